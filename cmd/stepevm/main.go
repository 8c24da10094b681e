// Copyright 2025 The StepEVM Authors
// This file is part of StepEVM.
//
// StepEVM is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// StepEVM is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with StepEVM. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/evmlab/stepevm/execution/vm"
	"github.com/evmlab/stepevm/trainer"
)

func main() {
	app := &cli.App{
		Name:  "stepevm",
		Usage: "single-stepping EVM bytecode emulator",
		Commands: []*cli.Command{
			runCommand(),
			playCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "execute hex bytecode step by step",
		ArgsUsage: "<hexcode>",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "gas-limit",
				Usage: "gas budget for the run",
				Value: 1_000_000,
			},
			&cli.BoolFlag{
				Name:  "snapshot",
				Usage: "print the final machine state as JSON",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every step",
				Value: true,
			},
		},
		Action: runAction,
	}
}

func runAction(cliCtx *cli.Context) error {
	if cliCtx.NArg() != 1 {
		return errors.New("expected exactly one hexcode argument")
	}
	code, err := hex.DecodeString(strings.TrimPrefix(cliCtx.Args().First(), "0x"))
	if err != nil {
		return fmt.Errorf("decode hexcode: %w", err)
	}
	instrs, err := vm.Disassemble(code)
	if err != nil {
		return err
	}

	logger, err := newLogger(cliCtx.Bool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	evm := vm.New(cliCtx.Uint64("gas-limit"))
	for _, instr := range instrs {
		evm.PushInstruction(instr)
	}

	var stepErr error
	for !evm.Done() {
		pc := evm.PC()
		op, _ := evm.Bytecode().GetOp(pc)
		if stepErr = evm.Step(); stepErr != nil {
			logger.Error("step failed",
				zap.Uint64("pc", pc),
				zap.Stringer("op", op),
				zap.Error(stepErr))
			break
		}
		logger.Info("step",
			zap.Uint64("pc", pc),
			zap.Stringer("op", op),
			zap.Uint64("gasUsed", evm.Gas().Used()),
			zap.Int("stack", evm.Stack().Len()))
	}

	printSummary(evm)
	if cliCtx.Bool("snapshot") {
		if err := evm.Snapshot().WriteJSON(os.Stdout); err != nil {
			return err
		}
	}
	return stepErr
}

func printSummary(evm *vm.EVM) {
	fmt.Printf("pc:      %d\n", evm.PC())
	fmt.Printf("gas:     %d / %d\n", evm.Gas().Used(), evm.Gas().Limit())
	fmt.Printf("memory:  %d bytes\n", evm.Memory().Len())
	fmt.Printf("storage: %d slots (%d warm)\n", evm.Storage().Len(), evm.AccessList().Len())
	fmt.Println("stack (top first):")
	data := evm.Stack().Data()
	if len(data) == 0 {
		fmt.Println("  (empty)")
	}
	for i := len(data) - 1; i >= 0; i-- {
		fmt.Printf("  %s\n", data[i].Hex())
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "interactive predict-the-effect trainer",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "TOML trainer config",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "generator seed (overrides config)",
			},
		},
		Action: func(cliCtx *cli.Context) error {
			cfg, err := trainer.LoadConfig(cliCtx.String("config"))
			if err != nil {
				return err
			}
			if cliCtx.IsSet("seed") {
				cfg.Seed = cliCtx.Int64("seed")
			}
			return trainer.Run(cfg)
		},
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return cfg.Build()
}
