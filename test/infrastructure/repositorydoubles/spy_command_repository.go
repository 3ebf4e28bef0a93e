//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"

	"github.com/rios0rios0/statsexport/internal/domain/repositories"
)

// CommandCall records a single invocation of Run.
type CommandCall struct {
	Dir  string
	Name string
	Args []string
}

// Line returns the call as "name arg1 arg2 ...".
func (c CommandCall) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// CommandResponse is the scripted result of a command.
type CommandResponse struct {
	Output repositories.CommandOutput
	Err    error
}

// SpyCommandRepository implements repositories.CommandRepository as a configurable spy.
// Responses are looked up by "name subcommand" (e.g. "git status").
type SpyCommandRepository struct {
	Responses map[string]CommandResponse
	Calls     []CommandCall
}

var _ repositories.CommandRepository = (*SpyCommandRepository)(nil)

func (s *SpyCommandRepository) Run(
	_ context.Context,
	dir, name string,
	args ...string,
) (repositories.CommandOutput, error) {
	s.Calls = append(s.Calls, CommandCall{Dir: dir, Name: name, Args: args})

	key := name
	if len(args) > 0 {
		key += " " + args[0]
	}
	if response, ok := s.Responses[key]; ok {
		return response.Output, response.Err
	}
	return repositories.CommandOutput{}, nil
}

// Subcommands returns the first argument of every call, in order.
func (s *SpyCommandRepository) Subcommands() []string {
	result := make([]string, 0, len(s.Calls))
	for _, call := range s.Calls {
		if len(call.Args) > 0 {
			result = append(result, call.Args[0])
		}
	}
	return result
}

// CallsTo returns the calls whose first argument is subcommand.
func (s *SpyCommandRepository) CallsTo(subcommand string) []CommandCall {
	var result []CommandCall
	for _, call := range s.Calls {
		if len(call.Args) > 0 && call.Args[0] == subcommand {
			result = append(result, call)
		}
	}
	return result
}
