package plugin

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/sajari/fuzzy"

	"github.com/kgilper/kpad/internal/logger"
)

// ErrUnknownCommand is matched by errors returned for names that are not
// registered.
var ErrUnknownCommand = errors.New("unknown command")

// UnknownCommandError carries the closest registered name, if one is near.
type UnknownCommandError struct {
	Name       string
	Suggestion string
}

func (e *UnknownCommandError) Error() string {
	msg := fmt.Sprintf("unknown command: '%s'", e.Name)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Did you mean '%s'?", e.Suggestion)
	}
	return msg
}

func (e *UnknownCommandError) Is(target error) bool { return target == ErrUnknownCommand }

// Command is a named action that can be run from the command prompt or
// a key binding.
type Command struct {
	Name        string
	Description string
	Key         string // optional, e.g. "Ctrl+U"
	Source      string // "builtin" or the plugin id
	Run         CommandFunc
}

// Registry holds every command. Names are case-insensitive.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds or replaces a command.
func (r *Registry) Register(cmd Command) error {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return fmt.Errorf("command registration failed: name cannot be empty")
	}
	if cmd.Run == nil {
		return fmt.Errorf("command registration failed: '%s' has no function", name)
	}
	cmd.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(name)
	if prev, ok := r.commands[key]; ok {
		logger.Warnf("command '%s' from %s replaced by %s", name, prev.Source, cmd.Source)
	}
	r.commands[key] = cmd
	logger.DebugTagf("plugin", "registered command '%s' (%s)", name, cmd.Source)
	return nil
}

// Get looks a command up by name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[strings.ToLower(strings.TrimSpace(name))]
	return cmd, ok
}

// List returns all commands sorted by name.
func (r *Registry) List() []Command {
	r.mu.RLock()
	cmds := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		cmds = append(cmds, c)
	}
	r.mu.RUnlock()
	sort.Slice(cmds, func(i, j int) bool { return strings.ToLower(cmds[i].Name) < strings.ToLower(cmds[j].Name) })
	return cmds
}

// Search returns up to limit commands whose name or description contains
// query.
func (r *Registry) Search(query string, limit int) []Command {
	q := strings.ToLower(query)
	var out []Command
	for _, c := range r.List() {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Description), q) {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Suggest returns the registered name closest to name by edit distance,
// if it is within 40% of the longer name's length (minimum 2).
func (r *Registry) Suggest(name string) (string, bool) {
	name = strings.ToLower(name)
	best, bestDist := "", math.MaxInt
	for _, c := range r.List() {
		candidate := strings.ToLower(c.Name)
		if d := fuzzy.Levenshtein(&name, &candidate); d < bestDist {
			best, bestDist = c.Name, d
		}
	}
	if best == "" {
		return "", false
	}
	threshold := int(math.Ceil(float64(max(len(name), len(best))) * 0.4))
	if bestDist > max(threshold, 2) {
		return "", false
	}
	return best, true
}

// Run executes the command called name against host. The handle passed to
// the command is invalidated when it returns.
func (r *Registry) Run(ctx context.Context, host Host, name string, args []string) error {
	cmd, ok := r.Get(name)
	if !ok {
		err := &UnknownCommandError{Name: strings.TrimSpace(name)}
		if s, ok := r.Suggest(err.Name); ok {
			err.Suggestion = s
		}
		return err
	}

	h := newHandle(host)
	defer h.invalidate()
	logger.DebugTagf("plugin", "running '%s' %v", cmd.Name, args)
	if err := cmd.Run(ctx, h, args); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}

// ParseCommandLine splits prompt input into a command name and arguments.
func ParseCommandLine(line string) (name string, args []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
