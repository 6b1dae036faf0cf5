package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/color"
	"github.com/pkg/errors"
	"github.com/vdrcandles/catalog/internal/catalog"
	"go.uber.org/zap"
)

// ErrInterrupted is returned by Run when its context is cancelled.
var ErrInterrupted = errors.New("interrupted")

const (
	defaultExportFile = "products.csv"
	menuRule          = "=================================================="
)

var menuItems = []string{
	"1. List all products",
	"2. Add new product",
	"3. Update product",
	"4. Delete product",
	"5. Search by name",
	"6. Filter by category",
	"7. View statistics",
	"8. Export to CSV",
	"9. Import from CSV",
	"0. Exit",
}

// Shell is the numbered-menu front end of a catalog.Store. It reads one line
// per prompt and coerces field values before calling the store.
type Shell struct {
	store   *catalog.Store
	in      io.Reader
	out     io.Writer
	colors  *color.Color
	title   string
	lines   chan string
	readErr error
}

type Option func(*Shell)

// WithColor toggles ANSI colors on notices.
func WithColor(enabled bool) Option {
	return func(sh *Shell) {
		if enabled {
			sh.colors.Enable()
		} else {
			sh.colors.Disable()
		}
	}
}

// WithTitle sets the banner printed above the menu.
func WithTitle(title string) Option {
	return func(sh *Shell) { sh.title = title }
}

func New(store *catalog.Store, in io.Reader, out io.Writer, opts ...Option) (*Shell, error) {
	sh := &Shell{
		store:  store,
		in:     in,
		out:    out,
		colors: color.New(),
		title:  "VDR CANDLE CRAFTS - PRODUCT MANAGER",
	}
	for _, opt := range opts {
		opt(sh)
	}
	if err := catalog.SubscribeNotices(store.Bus(), sh.printNotice); err != nil {
		return nil, errors.Wrap(err, "subscribe notices")
	}
	return sh, nil
}

func (sh *Shell) printNotice(n catalog.Notice) {
	switch n.Level {
	case catalog.NoticeSuccess:
		fmt.Fprintln(sh.out, sh.colors.Green("✓ "+n.Message))
	case catalog.NoticeError:
		fmt.Fprintln(sh.out, sh.colors.Red("✗ "+n.Message))
	case catalog.NoticeWarn:
		fmt.Fprintln(sh.out, sh.colors.Yellow("✗ "+n.Message))
	default:
		fmt.Fprintln(sh.out, n.Message)
	}
}

// Run loops over the menu until the exit option, end of input or ctx
// cancellation. Failures the store does not recover from end the loop and
// are returned; a panic in a command is turned into an error.
func (sh *Shell) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorf("shell panic: %v", r)
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = errors.Errorf("%v", r)
			}
		}
	}()

	sh.startReader()
	for {
		sh.printMenu()
		choice, err := sh.prompt(ctx, "Select option: ")
		if errors.Is(err, io.EOF) {
			sh.goodbye()
			return nil
		}
		if err != nil {
			return err
		}

		choice = strings.TrimSpace(choice)
		zap.L().Debug("menu selection", zap.String("choice", choice))
		if choice == "0" {
			sh.goodbye()
			return nil
		}
		if err := sh.dispatch(ctx, choice); err != nil {
			return err
		}
	}
}

func (sh *Shell) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		sh.store.List(sh.out)
		return nil
	case "2":
		return sh.addProduct(ctx)
	case "3":
		return sh.updateProduct(ctx)
	case "4":
		return sh.deleteProduct(ctx)
	case "5":
		return sh.searchByName(ctx)
	case "6":
		return sh.filterByCategory(ctx)
	case "7":
		return sh.showStats()
	case "8":
		return sh.exportFile(ctx)
	case "9":
		return sh.importFile(ctx)
	default:
		fmt.Fprintln(sh.out, "Invalid option. Please try again.")
		return nil
	}
}

func (sh *Shell) printMenu() {
	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, menuRule)
	fmt.Fprintln(sh.out, sh.title)
	fmt.Fprintln(sh.out, menuRule)
	for _, item := range menuItems {
		fmt.Fprintln(sh.out, item)
	}
	fmt.Fprintln(sh.out, menuRule)
}

func (sh *Shell) goodbye() {
	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, "Thank you for using Product Manager!")
}

// startReader feeds input lines to sh.lines so prompts can also watch ctx.
func (sh *Shell) startReader() {
	if sh.lines != nil {
		return
	}
	sh.lines = make(chan string)
	go func() {
		defer close(sh.lines)
		scanner := bufio.NewScanner(sh.in)
		for scanner.Scan() {
			sh.lines <- strings.TrimRight(scanner.Text(), "\r")
		}
		sh.readErr = scanner.Err()
	}()
}

func (sh *Shell) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(sh.out, label)
	select {
	case <-ctx.Done():
		return "", ErrInterrupted
	case line, ok := <-sh.lines:
		if !ok {
			if sh.readErr != nil {
				return "", errors.Wrap(sh.readErr, "read input")
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// promptText reads a trimmed line, falling back to def when it is empty.
func (sh *Shell) promptText(ctx context.Context, label, def string) (string, error) {
	line, err := sh.prompt(ctx, label)
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (sh *Shell) promptInt(ctx context.Context, label string) (int64, error) {
	line, err := sh.prompt(ctx, label)
	if err != nil {
		return 0, err
	}
	return catalog.ParseInt(line)
}
