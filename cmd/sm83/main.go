package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/machine"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/trace"
	"github.com/thelolagemann/sm83/pkg/utils"
)

func main() {
	imageFile := flag.String("image", "", "The program image to load")
	at := flag.String("at", "0x0100", "The address to load the image at")
	pc := flag.String("pc", "", "The initial program counter (defaults to -at, or $0100 for a cartridge loaded at 0)")
	sp := flag.String("sp", "0xFFFE", "The initial stack pointer")
	mem := flag.Int("mem", machine.AddressSpace, "The size of memory in bytes")
	steps := flag.Int("steps", 0, "The number of instructions to execute, 0 runs until the machine stops")
	traceAddr := flag.String("trace", "", "Serve a websocket step trace on this address")
	compression := flag.Int("compress", -1, "Brotli quality for trace payloads, -1 disables compression")
	state := flag.String("state", "", "The state file to load")
	save := flag.String("save", "", "Write the final state to this file")
	printSteps := flag.Bool("print", false, "Print every executed instruction")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := log.New(*debug)

	loadAt, err := parseAddress(*at)
	if err != nil {
		logger.Fatal(fmt.Sprintf("-at: %v", err))
	}
	entry := loadAt
	stack, err := parseAddress(*sp)
	if err != nil {
		logger.Fatal(fmt.Sprintf("-sp: %v", err))
	}

	opts := []machine.Opt{
		machine.WithLogger(logger),
		machine.WithMemorySize(*mem),
		machine.WithStackPointer(stack),
	}

	if *imageFile != "" {
		image, err := utils.LoadFile(*imageFile)
		if err != nil {
			logger.Fatal(err.Error())
		}
		opts = append(opts, machine.WithImage(image, loadAt))

		// a full cartridge image starts executing at its entry point
		if header, ok := types.ParseHeader(image); ok && loadAt == 0 {
			logger.Infof("cartridge: %s", header)
			if !header.Valid() {
				logger.Warnf("cartridge header checksum mismatch")
			}
			entry = types.EntryPoint.Start
		}
	}

	if *pc != "" {
		if entry, err = parseAddress(*pc); err != nil {
			logger.Fatal(fmt.Sprintf("-pc: %v", err))
		}
	}
	opts = append(opts, machine.WithEntryPoint(entry))

	if *state != "" {
		state, err := utils.LoadFile(*state)
		if err != nil {
			logger.Fatal(err.Error())
		}
		opts = append(opts, machine.WithState(state))
	}

	var tracers multiTracer
	if *printSteps {
		tracers = append(tracers, newConsoleTracer(os.Stdout))
	}
	if *traceAddr != "" {
		var hubOpts []trace.HubOpt
		if *compression >= 0 {
			hubOpts = append(hubOpts, trace.WithCompression(*compression))
		}
		hub := trace.NewHub(logger, hubOpts...)
		go hub.Run()
		defer hub.Close()

		server := &http.Server{Addr: *traceAddr, Handler: hub}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("trace: %v", err)
			}
		}()
		defer server.Close()

		logger.Infof("serving trace on %s", *traceAddr)
		tracers = append(tracers, hub)
	}
	if len(tracers) > 0 {
		opts = append(opts, machine.WithTracer(tracers))
	}

	m, err := machine.New(opts...)
	if err != nil {
		logger.Fatal(err.Error())
	}

	n, err := m.Run(*steps)
	if *printSteps {
		fmt.Println()
	}
	var fault *cpu.MemoryFault
	switch {
	case errors.As(err, &fault):
		logger.Errorf("faulted after %d steps: %v", n, err)
	case err != nil:
		logger.Infof("stopped after %d steps: %v", n, err)
	default:
		logger.Infof("executed %d steps", n)
	}

	fmt.Println(m.Registers())
	fmt.Printf("fingerprint: %016x\n", m.Fingerprint())

	if *save != "" {
		s := types.NewState()
		m.Save(s)
		if err := s.SaveToFile(*save); err != nil {
			logger.Errorf("unable to save state: %v", err)
		}
	}
}

// parseAddress parses a 16-bit address in decimal, 0x hex or $ hex.
func parseAddress(s string) (uint16, error) {
	if len(s) > 1 && s[0] == '$' {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseUint(s, 0, 16)
	return uint16(v), err
}

type multiTracer []machine.Tracer

func (m multiTracer) Trace(step uint64, instr cpu.Instruction, regs cpu.Registers) {
	for _, t := range m {
		t.Trace(step, instr, regs)
	}
}

// consoleTracer prints each step, rewriting a single line when the
// output is a terminal.
type consoleTracer struct {
	w       io.Writer
	inPlace bool
}

func newConsoleTracer(f *os.File) *consoleTracer {
	return &consoleTracer{
		w:       f,
		inPlace: term.IsTerminal(int(f.Fd())),
	}
}

func (c *consoleTracer) Trace(step uint64, instr cpu.Instruction, regs cpu.Registers) {
	if c.inPlace {
		fmt.Fprintf(c.w, "\r%8d %-16s %s", step, instr, regs)
		return
	}
	fmt.Fprintf(c.w, "%8d %-16s %s\n", step, instr, regs)
}
