// Package format implements the formatting subcommands: it wires a parse
// adapter to the renderer and deals with file input and output.
package format

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/asottile-archive/css-explore/css"
	"github.com/asottile-archive/css-explore/state"
)

// newAdapter picks the parse adapter from the active configuration.
func newAdapter(env *state.LocalEnv) (css.ParseAdapter, error) {
	switch env.Cfg.Format.Parser {
	case "exec":
		return css.NewExecParser(env.Log, env.Cfg.Format.ParserCommand)
	default:
		return css.NewParser(env.Log), nil
	}
}

// parseFile reads the source file and runs it through the parse adapter.
func parseFile(ctx context.Context, env *state.LocalEnv, fname string) (*css.Node, error) {
	src, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("unable to read source file '%s': %w", fname, err)
	}
	env.Rpt.StoreData("input.css", src)

	adapter, err := newAdapter(env)
	if err != nil {
		return nil, err
	}

	root, err := adapter.Parse(ctx, src)
	if err != nil {
		return nil, err
	}

	if env.Rpt != nil {
		if tree, err := css.EncodeTree(root); err == nil {
			env.Rpt.StoreData("parse-tree.json", tree)
		}
	}
	return root, nil
}

// Run formats a single CSS file and writes the result to stdout or to the
// requested output file.
func Run(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one source file, got %d arguments", cmd.Args().Len())
	}
	fname := cmd.Args().Get(0)

	env.Output = cmd.String("output")
	env.IgnoreCharset = env.Cfg.Format.IgnoreCharset || cmd.Bool("ignore-charset")
	env.IgnoreComments = env.Cfg.Format.IgnoreComments || cmd.Bool("ignore-comments")
	env.IgnoreEmptyRules = env.Cfg.Format.IgnoreEmptyRules || cmd.Bool("ignore-empty-rules")

	env.Log.Debug("Formatting",
		zap.String("file", fname),
		zap.String("parser", env.Cfg.Format.Parser),
		zap.Bool("ignore_charset", env.IgnoreCharset),
		zap.Bool("ignore_comments", env.IgnoreComments),
		zap.Bool("ignore_empty_rules", env.IgnoreEmptyRules))

	root, err := parseFile(ctx, env, fname)
	if err != nil {
		return err
	}

	renderer := css.NewRenderer(css.RenderOptions{
		IgnoreCharset:    env.IgnoreCharset,
		IgnoreComments:   env.IgnoreComments,
		IgnoreEmptyRules: env.IgnoreEmptyRules,
	})

	text, err := renderer.Render(root)
	if err != nil {
		return err
	}
	env.Rpt.StoreData("output.css", []byte(text))

	out := os.Stdout
	if len(env.Output) > 0 {
		if out, err = os.Create(env.Output); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", env.Output, err)
		}
		defer out.Close()
	}

	if _, err := out.WriteString(text); err != nil {
		return fmt.Errorf("unable to write formatted output: %w", err)
	}
	return nil
}

// Tree dumps the parse tree of a single CSS file for troubleshooting.
func Tree(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one source file, got %d arguments", cmd.Args().Len())
	}
	fname := cmd.Args().Get(0)

	root, err := parseFile(ctx, env, fname)
	if err != nil {
		return err
	}

	if _, err := os.Stdout.WriteString(css.DumpTree(root)); err != nil {
		return fmt.Errorf("unable to write tree dump: %w", err)
	}
	return nil
}
