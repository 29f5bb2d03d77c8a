package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/8ff/chesscode/pkg/board"
	chess_codec "github.com/8ff/chesscode/pkg/codecs/chess"
	"github.com/8ff/chesscode/pkg/crc"
	"github.com/8ff/chesscode/pkg/misc"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

var helpMsg = `Chesscode - hide short ASCII messages in a chessboard

Usage:
   chesscode [file.env] [flags] [text]

   chesscode hello                  - encode text given as arguments
   echo hello | chesscode           - encode text from STDIN
   chesscode -d <board>             - decode a board (64 symbol line, grid or FEN placement)
   chesscode -b                     - batch: encode (or decode with -d) every STDIN line on its own
   chesscode -s                     - serve the web board and the /ws websocket API

Flags:
   -d/--decode     decode instead of encode
   -g/--grid       print boards as an 8x8 grid
   -f/--fen        print boards as a FEN piece placement
   -c/--checksum   append a crc16 to encoded boards, verify and strip it when decoding
   -b/--batch      one message per line
   -s/--serve      start the HTTP server
   -h/--help       print this help message

Symbols: . p n b r q k P N B R Q K  (lowercase == white, uppercase == black, . == empty)

Environment (optionally loaded from a .env file given as the first argument):
   CHESSCODE_HTTP_LISTEN_ADDR   default 127.0.0.1:3000
   CHESSCODE_LOG_LEVEL          debug, info, warning or error, default info
   CHESSCODE_OUTPUT             line, grid or fen, default line
   CHESSCODE_MAX_MESSAGE        largest websocket request in bytes, default 256`

type Config struct {
	HTTP_Listen_Addr string
	LogLevel         string
	Output           string
	MaxMessage       int64
	Decode           bool
	Batch            bool
	Serve            bool
	Checksum         bool
	Help             bool
	Text             []string
}

// Function that reads environment variables and sets config
func (conf *Config) parseEnv(args []string) error {
	// Check if first arg is a .env file, if so try to load it
	if len(args) > 0 && strings.HasSuffix(args[0], ".env") {
		if err := godotenv.Load(args[0]); err != nil {
			return fmt.Errorf("error loading .env file: %w", err)
		}
	}

	conf.HTTP_Listen_Addr = os.Getenv("CHESSCODE_HTTP_LISTEN_ADDR")
	if conf.HTTP_Listen_Addr == "" {
		conf.HTTP_Listen_Addr = "127.0.0.1:3000"
	}

	conf.LogLevel = os.Getenv("CHESSCODE_LOG_LEVEL")
	if conf.LogLevel == "" {
		conf.LogLevel = "info"
	}
	if err := misc.SetLevel(conf.LogLevel); err != nil {
		return err
	}

	conf.Output = os.Getenv("CHESSCODE_OUTPUT")
	if conf.Output == "" {
		conf.Output = "line"
	}
	switch conf.Output {
	case "line", "grid", "fen":
	default:
		return fmt.Errorf("invalid CHESSCODE_OUTPUT %q, want line, grid or fen", conf.Output)
	}

	maxMessage := os.Getenv("CHESSCODE_MAX_MESSAGE")
	if maxMessage == "" {
		maxMessage = "256"
	}
	var err error
	conf.MaxMessage, err = strconv.ParseInt(maxMessage, 10, 64)
	if err != nil || conf.MaxMessage <= 0 {
		return fmt.Errorf("invalid CHESSCODE_MAX_MESSAGE %q", maxMessage)
	}

	misc.Log("debug", "********* Config **********")
	misc.Log("debug", fmt.Sprintf("HTTP listen addr: %s", conf.HTTP_Listen_Addr))
	misc.Log("debug", fmt.Sprintf("Log level: %s", conf.LogLevel))
	misc.Log("debug", fmt.Sprintf("Output: %s", conf.Output))
	misc.Log("debug", fmt.Sprintf("Max message: %d", conf.MaxMessage))
	return nil
}

// Function that reads flags, everything that is not a flag is text to work on. A lone -- ends the flags.
func (conf *Config) parseFlags(args []string) error {
	if len(args) > 0 && strings.HasSuffix(args[0], ".env") {
		args = args[1:]
	}
	for i, arg := range args {
		switch arg {
		case "-d", "--decode":
			conf.Decode = true
		case "-g", "--grid":
			conf.Output = "grid"
		case "-f", "--fen":
			conf.Output = "fen"
		case "-c", "--checksum":
			conf.Checksum = true
		case "-b", "--batch":
			conf.Batch = true
		case "-s", "--serve":
			conf.Serve = true
		case "-h", "--help":
			conf.Help = true
		case "--":
			conf.Text = append(conf.Text, args[i+1:]...)
			return nil
		default:
			if len(arg) > 1 && strings.HasPrefix(arg, "-") {
				return fmt.Errorf("unknown flag %s", arg)
			}
			conf.Text = append(conf.Text, arg)
		}
	}
	if conf.Checksum && conf.Output != "line" {
		return fmt.Errorf("checksums only work with line output")
	}
	return nil
}

func (conf *Config) run(in io.Reader, out io.Writer) error {
	if conf.Serve {
		return conf.serveHTTP()
	}
	if conf.Batch {
		return conf.runBatch(in, out)
	}

	var input string
	if len(conf.Text) > 0 {
		input = strings.Join(conf.Text, " ")
	} else {
		data, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		input = strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
	}

	result, err := conf.process(input)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, result)
	return err
}

// Every line is handled on its own, failed lines are collected and reported together
func (conf *Config) runBatch(in io.Reader, out io.Writer) error {
	var result error
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		res, err := conf.process(strings.TrimSuffix(scanner.Text(), "\r"))
		if err != nil {
			misc.Log("debug", fmt.Sprintf("Line %d failed: %s", line, err))
			result = multierror.Append(result, fmt.Errorf("line %d: %w", line, err))
			res = "" // keep output lines aligned with input lines
		}
		if _, err := fmt.Fprintln(out, res); err != nil {
			return multierror.Append(result, err)
		}
	}
	if err := scanner.Err(); err != nil {
		result = multierror.Append(result, err)
	}
	return result
}

func (conf *Config) process(input string) (string, error) {
	if conf.Decode {
		return conf.decode(input)
	}
	return conf.encode(input)
}

func (conf *Config) encode(text string) (string, error) {
	encoded, err := chess_codec.Encode(text)
	if err != nil {
		return "", err
	}
	misc.Log("debug", fmt.Sprintf("Encoded %d characters", len(text)))
	switch conf.Output {
	case "grid":
		grid, err := board.Grid(encoded)
		return strings.TrimSuffix(grid, "\n"), err
	case "fen":
		return board.FEN(encoded)
	}
	if conf.Checksum {
		return crc.AppendBoard16(encoded), nil
	}
	return encoded, nil
}

func (conf *Config) decode(input string) (string, error) {
	if conf.Checksum {
		stripped, err := crc.StripBoard16(input)
		if err != nil {
			return "", err
		}
		input = stripped
	}
	parsed, err := board.Parse(input)
	if err != nil {
		return "", err
	}
	return chess_codec.Decode(parsed)
}

func main() {
	config := Config{}
	if err := config.parseEnv(os.Args[1:]); err != nil {
		misc.Log("error", err.Error())
		os.Exit(1)
	}
	if err := config.parseFlags(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err, "\n"+helpMsg)
		os.Exit(1)
	}
	if config.Help {
		fmt.Println(helpMsg)
		return
	}

	if err := config.run(os.Stdin, os.Stdout); err != nil {
		misc.Log("error", err.Error())
		os.Exit(1)
	}
}
