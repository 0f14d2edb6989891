package main

import (
	"errors"
	"fmt"
	"os"

	"moss/emu/log"
	"moss/hw"
	"moss/hw/hwio"
	"moss/prog"
)

// newMachine assembles a CPU wired to a flat 64 KiB RAM image.
func newMachine() *hw.CPU {
	bus := hwio.NewTable("cpu")
	ram := make([]byte, 0x10000)
	bus.MapMemorySlice(0x0000, 0xFFFF, ram, false)
	return hw.NewCPU(bus)
}

func runImage(cmd Run, cfg Config) error {
	cpu := newMachine()
	log.AddContext(cpu)

	entry := cmd.Org.addr()
	if cmd.Entry != "" {
		var a hexaddr
		if err := a.UnmarshalText([]byte(cmd.Entry)); err != nil {
			return err
		}
		entry = a.addr()
	}

	data, err := os.ReadFile(cmd.ImagePath)
	if err != nil {
		return err
	}
	if err := prog.Load(cpu.Bus, cmd.Org.addr(), data, entry); err != nil {
		return err
	}

	if cmd.Trace.w != nil {
		defer cmd.Trace.Close()
		if cmd.TraceJSON || cfg.General.TraceJSON {
			cpu.SetJSONTraceOutput(cmd.Trace.w)
		} else {
			cpu.SetTraceOutput(cmd.Trace.w)
		}
	}

	limit := cmd.Limit
	if limit == 0 {
		limit = cfg.General.CycleLimit
	}
	if limit == 0 {
		limit = defaultCycleLimit
	}

	if cmd.SaveConfig {
		cfg.General.CycleLimit = limit
		cfg.General.TraceJSON = cmd.TraceJSON || cfg.General.TraceJSON
		if err := SaveConfig(cfg); err != nil {
			return err
		}
	}

	cpu.Reset()
	for !cpu.IsHalted() {
		if cpu.Cycles >= limit {
			fatalf("cycle limit exceeded (%d cycles)", limit)
		}
		if err := cpu.Step(); err != nil {
			var oerr *hw.OpcodeError
			if errors.As(err, &oerr) {
				log.ModEmu.WarnZ("execution stopped").
					Hex8("opcode", oerr.Opcode).
					End()
				break
			}
			return err
		}
	}

	printState(cpu)
	return nil
}

func printState(cpu *hw.CPU) {
	fmt.Printf("A:%02X X:%02X Y:%02X SP:%02X PC:%04X P:%s CYC:%d\n",
		cpu.A, cpu.X, cpu.Y, cpu.SP, cpu.PC, cpu.P, cpu.Cycles)
}

func disasmImage(cmd Disasm) error {
	cpu := newMachine()

	org := cmd.Org.addr()
	n, err := prog.ReadFile(cpu.Bus, cmd.ImagePath, org)
	if err != nil {
		return err
	}

	end := uint32(org) + uint32(n)
	for pc := uint32(org); pc < end; {
		dis := cpu.Disasm(uint16(pc))
		os.Stdout.Write(dis.Bytes())
		fmt.Println()
		pc += uint32(dis.Size())
	}
	return nil
}
