// Command mastermind breaks a secret color code. Interactively you keep the
// secret and score each attempt; -secret plays one code automatically and
// -bench plays every code of the chosen length.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"example.com/mastermind/internal/app"
	"example.com/mastermind/internal/book"
	"example.com/mastermind/internal/mastermind"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	length   int
	strategy string
	secret   string
	bench    bool
	verbose  bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("mastermind", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.length, "length", 0, "combination length (2-5); asked when 0")
	fs.StringVar(&opts.strategy, "strategy", "", "B|i|K or exhaustive|filtered|minimax; asked when empty")
	fs.StringVar(&opts.secret, "secret", "", "play this secret automatically, e.g. YBGR")
	fs.BoolVar(&opts.bench, "bench", false, "play every secret of the length and print statistics")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log := app.NewLogger(stderr, "text", level)

	in := bufio.NewScanner(stdin)

	if opts.secret != "" && opts.length == 0 {
		secret, err := mastermind.ParseCombination(opts.secret)
		if err != nil {
			return err
		}
		opts.length = len(secret)
	}
	length, err := askLength(in, stdout, opts.length)
	if err != nil {
		return err
	}
	strategy, err := askStrategy(in, stdout, opts.strategy)
	if err != nil {
		return err
	}

	cfg := mastermind.Config{Length: length, Strategy: strategy, Log: log}
	if strategy == mastermind.StrategyMinimax {
		cfg.Book = book.NewMemory()
	}

	switch {
	case opts.bench:
		res, err := runBench(ctx, cfg, stderr)
		if err != nil {
			return err
		}
		res.print(stdout)
		return nil

	case opts.secret != "":
		secret, err := mastermind.ParseCombination(opts.secret)
		if err != nil {
			return err
		}
		report, err := mastermind.Solve(ctx, cfg, secret)
		if err != nil {
			return err
		}
		printReport(stdout, report)
		return nil
	}

	solver, err := mastermind.NewSolver(cfg, &promptOracle{in: in, out: stdout})
	if err != nil {
		return err
	}
	report, err := solver.Run(ctx)
	if errors.Is(err, mastermind.ErrOracleAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Found solution : %s\n", report.Solution)
	return nil
}

func askLength(in *bufio.Scanner, out io.Writer, length int) (int, error) {
	if length == 0 {
		fmt.Fprint(out, "What size (2, 3, 4, 5)? ")
		line, err := readLine(in)
		if err != nil {
			return 0, err
		}
		if length, err = strconv.Atoi(line); err != nil {
			return 0, fmt.Errorf("size %q: %w", line, mastermind.ErrInvalidLength)
		}
	}
	if err := mastermind.ValidateLength(length); err != nil {
		return 0, err
	}
	return length, nil
}

func askStrategy(in *bufio.Scanner, out io.Writer, s string) (mastermind.Strategy, error) {
	if s == "" {
		fmt.Fprint(out, "What strategy ([B]rute force, B[i]tfield, [K]nuth)? ")
		line, err := readLine(in)
		if err != nil {
			return "", err
		}
		s = line
	}
	return mastermind.ParseStrategy(s)
}

func readLine(in *bufio.Scanner) (string, error) {
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(in.Text()), nil
}

func printReport(out io.Writer, r mastermind.Report) {
	for i, round := range r.Rounds {
		fmt.Fprintf(out, "Attempt %d: %s  %s\n", i+1, round.Guess, round.Feedback)
	}
	fmt.Fprintf(out, "Found solution : %s (%d attempts, %s)\n", r.Solution, len(r.Rounds), r.Strategy)
}

// promptOracle asks the user to score each attempt on stdin.
type promptOracle struct {
	in    *bufio.Scanner
	out   io.Writer
	round int
}

func (o *promptOracle) Evaluate(ctx context.Context, guess mastermind.Combination) (mastermind.Response, error) {
	o.round++
	fmt.Fprintf(o.out, "Attempt %d: %s\n", o.round, guess)
	fmt.Fprint(o.out, "Please score attempt (positions, colors): ")

	line, err := readLine(o.in)
	if err != nil {
		fmt.Fprintln(o.out, "Unable to parse answer. Aborting.")
		return mastermind.AbortedResponse, nil
	}
	fb, err := mastermind.ParseFeedback(line)
	if err != nil {
		fmt.Fprintln(o.out, "Unable to parse answer. Aborting.")
		return mastermind.AbortedResponse, nil
	}
	return mastermind.FeedbackResponse(fb), nil
}
