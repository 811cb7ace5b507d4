// Command replay verifies a golden replay: starting from a save (or a fresh
// seed), it re-applies a recorded command stream and compares the per-step
// state digests, exiting nonzero at the first divergence.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	persistlog "guildhall.quest/internal/persistence/log"
	"guildhall.quest/internal/persistence/save"
	"guildhall.quest/internal/protocol"
	"guildhall.quest/internal/sim/balance"
	"guildhall.quest/internal/sim/catalogs"
	"guildhall.quest/internal/sim/guild"
)

func main() {
	var (
		savePath    = flag.String("save", "", "path to save file (.save.zst); empty starts fresh from -seed")
		logPath     = flag.String("log", "", "path to steps.jsonl.zst")
		seed        = flag.Int64("seed", 1337, "seed for a fresh start")
		configDir   = flag.String("configs", "./configs", "config directory")
		balancePath = flag.String("balance", "", "path to balance.yaml (default: <configs>/balance.yaml)")
		verify      = flag.Bool("verify", true, "run the invariant verifier after each step")
	)
	flag.Parse()

	if *logPath == "" {
		fmt.Fprintln(os.Stderr, "missing -log")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configDir, *balancePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var state guild.State
	var draws uint64
	if *savePath != "" {
		state, draws, err = save.ReadFile(*savePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read save:", err)
			os.Exit(1)
		}
	} else {
		state = guild.NewState(cfg, *seed)
	}
	rng := guild.ResumeRNG(state.Meta.Seed, draws)

	entries, err := persistlog.ReadAll(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read log:", err)
		os.Exit(1)
	}
	fmt.Printf("replaying %d steps (seed=%d day=%d draws=%d)\n",
		len(entries), state.Meta.Seed, state.Meta.Day, draws)

	for _, e := range entries {
		cmd, err := decodeLoggedCommand(e)
		if err != nil {
			fmt.Fprintf(os.Stderr, "step %d: %v\n", e.Step, err)
			os.Exit(1)
		}
		state, _ = guild.Step(cfg, state, cmd, rng)

		if *verify {
			if violations := guild.Verify(state); len(violations) > 0 {
				fmt.Fprintf(os.Stderr, "step %d: invariant violations:\n", e.Step)
				for _, v := range violations {
					fmt.Fprintf(os.Stderr, "  %s\n", v)
				}
				os.Exit(1)
			}
		}

		got := guild.StateDigest(state)
		if e.Digest != "" && got != e.Digest {
			fmt.Fprintf(os.Stderr, "step %d: digest mismatch\n  want %s\n  got  %s\n",
				e.Step, e.Digest, got)
			os.Exit(1)
		}
	}

	fmt.Printf("ok: %d steps, final day=%d revision=%d digest=%s\n",
		len(entries), state.Meta.Day, state.Meta.Revision, guild.StateDigest(state))
}

func decodeLoggedCommand(e persistlog.StepEntry) (guild.Command, error) {
	cmd, err := protocol.DecodeCommand(e.Command)
	if err != nil {
		return nil, fmt.Errorf("decode logged command: %w", err)
	}
	return cmd, nil
}

func loadConfig(configDir, balancePath string) (guild.Config, error) {
	bp := strings.TrimSpace(balancePath)
	if bp == "" {
		bp = filepath.Join(configDir, "balance.yaml")
	}
	prof, err := balance.Load(bp)
	if err != nil {
		if !os.IsNotExist(err) {
			return guild.Config{}, fmt.Errorf("load balance: %w", err)
		}
		prof = balance.Default()
	}
	cats, err := catalogs.Load(configDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return guild.Config{}, fmt.Errorf("load catalogs: %w", err)
		}
		cats = catalogs.Builtin()
	}
	return guild.Config{Balance: prof, Catalogs: cats}, nil
}
