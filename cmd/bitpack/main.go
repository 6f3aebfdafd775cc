package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/keisku/bitpack/internal/logging"
	"github.com/keisku/bitpack/internal/script"
	"github.com/rs/zerolog/log"
)

func main() {
	scriptPath := flag.String("script", "", "path to a .toml or .yaml pack script")
	capacity := flag.String("capacity", "32 bits", "buffer capacity when packing positional bit strings")
	offset := flag.String("offset", "", "output offset, a whole number of octets")
	verbose := flag.Bool("v", false, "log every pack")
	flag.Parse()

	logger := logging.New("bitpack", *verbose)

	var (
		s   script.Script
		err error
	)
	if *scriptPath != "" {
		s, err = script.Load(*scriptPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load script")
		}
		log.Debug().Str("path", *scriptPath).Int("writes", len(s.Writes)).Msg("loaded script")
	} else {
		s = script.Script{Capacity: *capacity}
		for _, arg := range flag.Args() {
			s.Writes = append(s.Writes, script.Write{Bits: arg})
		}
	}
	if *offset != "" {
		s.Offset = *offset
	}

	out, err := script.Run(s, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to pack")
	}
	fmt.Fprintln(os.Stdout, hex.EncodeToString(out))
}
