package main

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/cdeanmorgan/chesscore/core"
)

// Config is the optional engine.toml layout: engine identity for the UCI
// "id" response, the transposition-table size and opening-book path, and
// the pruning-schedule overrides spec.md 9 calls
// tuning parameters rather than pinned values. Any field left unset in
// the file keeps its DefaultTuning()/engine default.
type Config struct {
	Name   string `toml:"name"`
	Author string `toml:"author"`

	TranspositionTableMB int `toml:"tt_size_mb"`
	BookPath             string `toml:"book_path"`

	Tuning struct {
		AspirationWindow      int `toml:"aspiration_window"`
		NullMoveR             int `toml:"null_move_r"`
		ReverseFutilityMargin int `toml:"reverse_futility_margin"`
		FutilityMarginPerPly  int `toml:"futility_margin_per_ply"`
		LMRMinDepth           int `toml:"lmr_min_depth"`
		LMRMinLegalCount      int `toml:"lmr_min_legal_count"`
		PanicScoreDrop        int `toml:"panic_score_drop"`
	} `toml:"tuning"`
}

// defaultConfig mirrors the teacher's hardcoded identity strings, updated
// to this module's own name.
func defaultConfig() Config {
	cfg := Config{
		Name:                 "chesscore",
		Author:               "chesscore contributors",
		TranspositionTableMB: 64,
		BookPath:             "book.bin",
	}
	return cfg
}

// loadConfig reads path if it exists, overlaying any fields it sets onto
// defaultConfig(). A missing file is not an error: the engine runs fine
// on defaults, the same "optional config" contract FrankyGo and
// Mgrdich-TermChess both follow for their own TOML files.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// tuning converts the config's overrides into a core.Tuning, leaving
// unset (zero) fields to fall back to core.DefaultTuning() inside
// Search.Run.
func (c Config) tuning() core.Tuning {
	return core.Tuning{
		AspirationWindow:      c.Tuning.AspirationWindow,
		NullMoveR:             c.Tuning.NullMoveR,
		ReverseFutilityMargin: c.Tuning.ReverseFutilityMargin,
		FutilityMarginPerPly:  c.Tuning.FutilityMarginPerPly,
		LMRMinDepth:           c.Tuning.LMRMinDepth,
		LMRMinLegalCount:      c.Tuning.LMRMinLegalCount,
		PanicScoreDrop:        c.Tuning.PanicScoreDrop,
	}
}
