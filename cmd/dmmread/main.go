// Command dmmread prints readings from an FS9721-family digital multimeter
// connected to a serial port.
//
// Usage:
//
//	dmmread [flags] <port>
//
// where <port> is a serial device like /dev/ttyUSB0 or COM3. Readings are
// printed once per successful frame, one line each, until the meter goes
// silent or the stream cannot be re-synchronized.
package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/arloliu/go-dmm/fs9721"
	"github.com/arloliu/go-dmm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dmmread: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		timeout    = flag.Float64("timeout", fs9721.DefaultTimeout.Seconds(), "serial read timeout in seconds")
		retries    = flag.Int("retries", fs9721.DefaultRetries, "frame read attempts before giving up")
		baud       = flag.Int("baud", fs9721.DefaultBaudRate, "serial baud rate")
		configPath = flag.String("config", "", "optional TOML config file")
		jsonOut    = flag.Bool("json", false, "print readings as JSON records")
		logLevel   = flag.String("log-level", "", "log level: debug, info, warn or error")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		if err := loadFileConfig(*configPath, &cfg); err != nil {
			return err
		}
	}

	// Explicitly set flags win over config file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "timeout":
			cfg.Timeout = time.Duration(*timeout * float64(time.Second))
		case "retries":
			cfg.Retries = *retries
		case "baud":
			cfg.BaudRate = *baud
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if flag.NArg() > 0 {
		cfg.Port = flag.Arg(0)
	}
	if cfg.Port == "" {
		return errors.New("no serial port given (argument or \"port\" config key)")
	}

	if cfg.LogLevel != "" {
		lvl, err := parseLogLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(lvl)
	}

	dmm, err := fs9721.Open(cfg.Port,
		fs9721.WithTimeout(cfg.Timeout),
		fs9721.WithRetries(cfg.Retries),
		fs9721.WithBaudRate(cfg.BaudRate),
	)
	if err != nil {
		return err
	}
	defer dmm.Close()

	enc := json.NewEncoder(os.Stdout)
	for {
		val, err := dmm.Read()
		if err != nil {
			return err
		}

		if *jsonOut {
			if err := enc.Encode(newRecord(val)); err != nil {
				return err
			}

			continue
		}

		fmt.Println(val.Text)
	}
}

// record is the JSON shape of one reading.
type record struct {
	Sane         bool           `json:"sane"`
	Text         string         `json:"text,omitempty"`
	NumericValue *float64       `json:"numeric_value,omitempty"`
	Unit         string         `json:"unit,omitempty"`
	Scale        string         `json:"scale,omitempty"`
	ACDC         string         `json:"ac_dc,omitempty"`
	Delta        bool           `json:"delta"`
	ReadErrors   int            `json:"read_errors"`
	Flags        fs9721.FlagSet `json:"flags"`
	RawBytes     string         `json:"raw_bytes"`
}

func newRecord(val *fs9721.Value) record {
	rec := record{
		Sane:         val.Sane,
		NumericValue: val.NumericValue,
		Unit:         val.Unit,
		Scale:        val.Scale,
		ACDC:         val.ACDC,
		Delta:        val.Delta,
		ReadErrors:   val.ReadErrors,
		Flags:        val.Flags,
		RawBytes:     hex.EncodeToString(val.RawBytes),
	}
	if val.Sane {
		rec.Text = val.Text
	}

	return rec
}
