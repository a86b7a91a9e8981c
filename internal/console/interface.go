package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"websmith/internal/config"
	"websmith/internal/scenario"
	"websmith/internal/usecase"
	"websmith/internal/usecase/adapters"
	"websmith/pkg/browser"
	"websmith/pkg/logg"
)

var errExit = errors.New("exit")

type inspector interface {
	Inspect(ctx context.Context) ([]browser.ElementInfo, error)
}

// Streams overrides the console's standard input and output.
type Streams struct {
	In  io.Reader
	Out io.Writer
}

type Interface struct {
	config  *config.Config
	logger  *zap.Logger
	usecase *usecase.Service
	in      io.Reader
	out     io.Writer
	style   styles

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	attached adapters.Attachment
	stopping bool
}

type Params struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Usecase *usecase.Service
	Streams *Streams `optional:"true"`
}

func NewInterface(params Params) *Interface {
	ctx, cancel := context.WithCancel(context.Background())

	i := &Interface{
		config:  params.Config,
		logger:  params.Logger.With(zap.String(logg.Layer, "Console")),
		usecase: params.Usecase,
		in:      os.Stdin,
		out:     os.Stdout,
		style:   newStyles(),
		ctx:     ctx,
		cancel:  cancel,
	}

	if params.Streams != nil {
		if params.Streams.In != nil {
			i.in = params.Streams.In
		}

		if params.Streams.Out != nil {
			i.out = params.Streams.Out
		}
	}

	return i
}

// Start reads commands until the input ends, an exit command arrives or the
// process is interrupted.
func (i *Interface) Start() error {
	i.printBanner()
	i.printHelp()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			i.logger.Info("Interrupt received, cancelling current step")
			i.cancel()
		case <-i.ctx.Done():
		}
	}()

	scanner := bufio.NewScanner(i.in)

	for !i.isStopping() {
		fmt.Fprint(i.out, "\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}

		if err := i.handleCommand(input); err != nil {
			if errors.Is(err, errExit) {
				break
			}

			i.logger.Debug("Command error", zap.Error(err))
			fmt.Fprintln(i.out, i.style.fail.Render("✗ "+err.Error()))
		}

		if i.ctx.Err() != nil {
			break
		}
	}

	i.detach()

	return scanner.Err()
}

func (i *Interface) Stop() error {
	i.mu.Lock()
	if i.stopping {
		i.mu.Unlock()

		return nil
	}
	i.stopping = true
	i.mu.Unlock()

	i.logger.Info("Stopping console interface...")
	i.cancel()
	i.detach()

	return nil
}

func (i *Interface) isStopping() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.stopping
}

func (i *Interface) handleCommand(input string) error {
	name, args, _ := strings.Cut(input, " ")
	args = strings.TrimSpace(args)

	switch strings.ToLower(name) {
	case "help", "h":
		i.printHelp()

		return nil
	case "exit", "quit", "q":
		fmt.Fprintln(i.out, "Shutting down...")

		return errExit
	case "title":
		return i.title()
	case "inspect":
		return i.inspect()
	case "run":
		return i.runFile(args)
	default:
		return i.executeStep(input)
	}
}

// attachment returns the console's long-lived session, opening it on first
// use so the page survives between commands.
func (i *Interface) attachment() (adapters.Attachment, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.attached != nil {
		return i.attached, nil
	}

	a, err := i.usecase.Scenario.Attach(i.ctx)
	if err != nil {
		return nil, err
	}

	i.attached = a

	return a, nil
}

func (i *Interface) detach() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.attached == nil {
		return
	}

	if err := i.attached.Close(); err != nil {
		i.logger.Warn("Failed to close session", zap.Error(err))
	}

	i.attached = nil
}

func (i *Interface) executeStep(line string) error {
	step, err := parseStep(line)
	if err != nil {
		return fmt.Errorf("%w (type help for usage)", err)
	}

	a, err := i.attachment()
	if err != nil {
		return err
	}

	out, err := i.usecase.Scenario.ExecuteStep(i.ctx, a, step)
	if err != nil {
		return err
	}

	msg := "✓ " + string(step.Action)
	if out != "" {
		msg += ": " + out
	}

	fmt.Fprintln(i.out, i.style.ok.Render(msg))

	return nil
}

func (i *Interface) title() error {
	a, err := i.attachment()
	if err != nil {
		return err
	}

	title, err := a.Session().Title(i.ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(i.out, title)

	return nil
}

func (i *Interface) inspect() error {
	a, err := i.attachment()
	if err != nil {
		return err
	}

	in, ok := a.Driver().(inspector)
	if !ok {
		return fmt.Errorf("inspect is not supported by the %s driver", i.config.BrowserConfig.Driver)
	}

	elements, err := in.Inspect(i.ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(i.out, i.style.header.Render(fmt.Sprintf("%d interactive elements", len(elements))))

	for _, el := range elements {
		line := fmt.Sprintf("  %-40s <%s", el.Locator, el.Tag)
		if el.Type != "" {
			line += " type=" + el.Type
		}
		line += ">"

		if el.Text != "" {
			line += " " + el.Text
		}

		if !el.Visible {
			line = i.style.dim.Render(line + " (hidden)")
		}

		fmt.Fprintln(i.out, line)
	}

	return nil
}

func (i *Interface) runFile(path string) error {
	if path == "" {
		return errors.New("usage: run FILE")
	}

	scn, err := scenario.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(i.out, i.style.header.Render("Running "+scn.Name))

	run, err := i.usecase.Scenario.Run(i.ctx, scn)
	if run != nil {
		for _, r := range run.Results {
			if r.Success {
				fmt.Fprintln(i.out, i.style.ok.Render(fmt.Sprintf("  ✓ %d %s", r.Index, r.Action)))
			} else {
				fmt.Fprintln(i.out, i.style.fail.Render(fmt.Sprintf("  ✗ %d %s: %s", r.Index, r.Action, r.Error)))
			}
		}
	}

	if err != nil {
		return err
	}

	fmt.Fprintln(i.out, i.style.ok.Render(fmt.Sprintf("%s passed (%d steps)", scn.Name, len(run.Results))))

	return nil
}

func (i *Interface) printBanner() {
	fmt.Fprintln(i.out, i.style.banner.Render("websmith shell  ·  driver: "+i.config.BrowserConfig.Driver))
}

func (i *Interface) printHelp() {
	help := `
Commands:
  help, h              Show this help message
  exit, quit, q        Exit the shell
  title                Print the page title
  inspect              List interactive elements (playwright only)
  run FILE             Run a scenario file

Steps (one per line, locators as strategy=value, shell-style quoting;
quote anything that starts with #):
  go URL                         fill NAME VALUE
  fill_form NAME=VALUE...        choose GROUP VALUE
  select [-t] NAME VALUE         check NAME | uncheck NAME
  click LOCATOR                  wait_and_click LOCATOR
  hover LOCATOR                  send_keys LOCATOR TEXT
  wait LOCATOR                   wait_visible LOCATOR
  scroll_into_view LOCATOR       scroll_page
  screenshot PATH                expect_title TITLE
  expect_value LOCATOR VALUE     expect_text LOCATOR TEXT
  expect_checked LOCATOR [BOOL]`

	fmt.Fprintln(i.out, i.style.dim.Render(help))
}
