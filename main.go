package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Leantar/dirwatch/agent"
	"github.com/Leantar/dirwatch/modules/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	configPath = flag.String("config", "", "Specify a path to load the config from")
	logLevel   = flag.String("log-level", "", "Override the log level (trace, debug, info, warn, error)")
	hash       = flag.Bool("hash", false, "Print the blake3 digest of files closed after writing")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] PATH [PATH ...]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Parse command line arguments
	flag.Usage = usage
	flag.Parse()

	var conf agent.Config
	if *configPath != "" {
		err := config.FromYamlFile(*configPath, &conf)
		if err != nil {
			log.Fatal().Caller().Err(err).Msg("failed to read config")
		}
	}

	// Paths given on the command line come first
	conf.Paths = append(append([]string(nil), flag.Args()...), conf.Paths...)
	if *logLevel != "" {
		conf.LogLevel = *logLevel
	}
	if *hash {
		conf.HashOnCloseWrite = true
	}

	if len(conf.Paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	err := configureLogging(conf)
	if err != nil {
		log.Fatal().Caller().Err(err).Msg("failed to configure logging")
	}

	a := agent.New(conf, int(os.Stdin.Fd()), os.Stdout)

	err = a.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to watch directories")
	}
}

func configureLogging(conf agent.Config) error {
	if conf.LogFormat == agent.LogFormatConsole {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if conf.LogLevel == "" {
		return nil
	}

	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	return nil
}
