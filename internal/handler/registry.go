package handler

import (
	"fmt"
	"strings"

	"github.com/dungeons/server/internal/world"
	"go.uber.org/zap"
)

// Command is one parsed client line: the leading token and its arguments.
type Command struct {
	Name string
	Args []string
}

// Arg returns the i-th argument, or "" when absent.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// HandlerFunc is the callback signature for command handlers.
type HandlerFunc func(p *world.Player, cmd Command)

// AnyArgs lifts the upper bound on a command's argument count.
const AnyArgs = -1

type handlerEntry struct {
	fn      HandlerFunc
	minArgs int
	maxArgs int
}

// Registry maps leading tokens to handlers with argument-count checks.
type Registry struct {
	handlers map[string]*handlerEntry
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]*handlerEntry),
		log:      log,
	}
}

// Register maps a token to a handler that accepts between minArgs and
// maxArgs arguments (AnyArgs for no upper bound).
func (reg *Registry) Register(token string, minArgs, maxArgs int, fn HandlerFunc) {
	reg.handlers[token] = &handlerEntry{
		fn:      fn,
		minArgs: minArgs,
		maxArgs: maxArgs,
	}
}

// Dispatch parses line and calls the matching handler for p. Unknown tokens
// and wrong argument counts are silently ignored. An error is returned only
// when the handler panicked.
func (reg *Registry) Dispatch(p *world.Player, line string) error {
	if p == nil {
		panic("handler: Dispatch with nil player")
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd := Command{Name: fields[0], Args: fields[1:]}

	entry, ok := reg.handlers[cmd.Name]
	if !ok {
		reg.log.Debug("未知指令", zap.String("cmd", cmd.Name), zap.String("player", string(p.ID())))
		return nil // silently ignore unknown commands
	}
	if len(cmd.Args) < entry.minArgs || (entry.maxArgs != AnyArgs && len(cmd.Args) > entry.maxArgs) {
		reg.log.Debug("指令參數數量不符",
			zap.String("cmd", cmd.Name),
			zap.Int("args", len(cmd.Args)),
		)
		return nil
	}

	return reg.safeCall(entry.fn, p, cmd)
}

// safeCall executes a handler with panic recovery to prevent a single
// bad command from crashing the entire game loop.
func (reg *Registry) safeCall(fn HandlerFunc, p *world.Player, cmd Command) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("處理器 panic 已恢復",
				zap.String("cmd", cmd.Name),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("handler panic for command %q: %v", cmd.Name, rec)
		}
	}()
	fn(p, cmd)
	return nil
}
