// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/manobc/cpu"
	"github.com/ezrec/manobc/emulator"
)

func main() {
	var compile string
	var program string
	var data string
	var save bool
	var run bool
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&program, "p", "program.txt", "Program image file")
	flag.StringVar(&data, "d", "data.txt", "Data image file")
	flag.BoolVar(&save, "s", false, "Save images after assembly, do not execute")
	flag.BoolVar(&run, "r", false, "Run to halt and print the profiler")
	flag.IntVar(&limit, "limit", 0, "Instruction budget for run (0 = unbounded)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if save {
			saveImage(program, prog.Code)
			saveImage(data, prog.Data)
			return
		}

		err = emu.LoadProgram(prog)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else {
		pf, err := os.Open(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		defer pf.Close()

		var df io.Reader
		if inf, err := os.Open(data); err == nil {
			defer inf.Close()
			df = inf
		}

		err = emu.LoadImage(pf, df)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
	}

	if run {
		count, err := emu.Run(limit)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Instructions executed: %d\n", count)
		showProfiler(emu)
		return
	}

	shell(emu, limit)
}

func saveImage(name string, cells []cpu.Cell) {
	ouf, err := os.Create(name)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}
	defer ouf.Close()

	err = emulator.WriteImage(ouf, cells)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}
}

func shell(emu *emulator.Emulator, limit int) {
	fmt.Println("Mano Basic Computer Emulator")
	fmt.Println("Type 'help' for list of commands.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}

		cmd := strings.ToLower(words[0])
		args := words[1:]

		switch cmd {
		case "exit", "quit":
			return
		case "help":
			showHelp()
		case "next_cycle":
			stepCycles(emu, 1)
		case "fast_cycle":
			n, ok := argCount(args)
			if !ok {
				fmt.Println("Usage: fast_cycle N")
				continue
			}
			stepCycles(emu, n)
		case "next_inst":
			stepInstructions(emu, 1)
		case "fast_inst":
			n, ok := argCount(args)
			if !ok {
				fmt.Println("Usage: fast_inst N")
				continue
			}
			stepInstructions(emu, n)
		case "run":
			bound := limit
			if n, ok := argCount(args); ok {
				bound = n
			}
			count, err := emu.Run(bound)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Instructions executed: %d\n", count)
		case "show":
			show(emu, args)
		default:
			fmt.Println("Unknown command. Type 'help' for commands.")
		}
	}
}

func showHelp() {
	fmt.Println("Commands:")
	fmt.Println("  next_cycle")
	fmt.Println("  fast_cycle N")
	fmt.Println("  next_inst")
	fmt.Println("  fast_inst N")
	fmt.Println("  run [LIMIT]")
	fmt.Println("  show REG")
	fmt.Println("  show mem ADDR [COUNT]")
	fmt.Println("  show all")
	fmt.Println("  show profiler")
	fmt.Println("  exit / quit")
}

func argCount(args []string) (n int, ok bool) {
	if len(args) == 0 {
		return
	}

	n, err := strconv.Atoi(args[0])
	ok = err == nil && n > 0

	return
}

func stepCycles(emu *emulator.Emulator, n int) {
	var micro string
	var changed []string

	for range n {
		var err error
		micro, changed, err = emu.StepCycle()
		if err != nil {
			fmt.Println(err)
			break
		}
		if emu.Halted() {
			break
		}
	}

	ir, _ := emu.ReadRegister("IR")
	slices.Sort(changed)
	text := "None"
	if len(changed) != 0 {
		text = strings.Join(changed, ", ")
	}

	fmt.Printf("Instruction in hand: 0x%04X\n", ir)
	fmt.Printf("Micro-operation: %v\n", micro)
	fmt.Printf("Changed: %v\n", text)
}

func stepInstructions(emu *emulator.Emulator, n int) {
	for range n {
		if emu.Halted() {
			fmt.Println("Machine halted.")
			break
		}

		_, err := emu.StepInstruction()
		if err != nil {
			fmt.Println(err)
			break
		}

		ir, _ := emu.ReadRegister("IR")
		pc, _ := emu.ReadRegister("PC")
		ac, _ := emu.ReadRegister("AC")
		fmt.Printf("Instruction executed: 0x%04X (%v)\n", ir, emu.Inst())
		fmt.Printf("PC = 0x%03X AC = 0x%04X\n", pc, ac)
	}
}

func show(emu *emulator.Emulator, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: show [REG|mem|all|profiler] ...")
		return
	}

	switch strings.ToLower(args[0]) {
	case "mem":
		showMemory(emu, args[1:])
	case "all":
		fmt.Print(emu.Reg.String())
	case "profiler":
		showProfiler(emu)
	default:
		value, err := emu.ReadRegister(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%v = 0x%04X\n", strings.ToUpper(args[0]), value)
	}
}

func showMemory(emu *emulator.Emulator, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: show mem ADDR [COUNT]")
		return
	}

	addr64, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(args[0]), "0x"), 16, 16)
	if err != nil {
		fmt.Println("Address must be hex")
		return
	}

	count := 1
	if len(args) > 1 {
		count, err = strconv.Atoi(args[1])
		if err != nil || count < 1 {
			fmt.Println("COUNT must be a positive integer")
			return
		}
	}

	values, err := emu.ReadMemory(cpu.Word(addr64), count)
	if err != nil {
		fmt.Println(err)
		return
	}

	for n, value := range values {
		fmt.Printf("M[%03X] = 0x%04X\n", int(addr64)+n, value)
	}
}

func showProfiler(emu *emulator.Emulator) {
	snap := emu.Snapshot()

	cpi := "n/a"
	if snap.CpiValid {
		cpi = strconv.FormatFloat(snap.Cpi, 'f', 2, 64)
	}

	fmt.Printf("Cycles: %d\n", snap.Cycles)
	fmt.Printf("Instructions: %d\n", snap.Instructions)
	fmt.Printf("CPI: %v\n", cpi)
	fmt.Printf("Memory reads: %d\n", snap.Reads)
	fmt.Printf("Memory writes: %d\n", snap.Writes)
}
