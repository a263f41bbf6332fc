package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/odvcencio/rhai-hir-go/hir"
	"github.com/odvcencio/rhai-hir-go/rhaiconfig"
	"github.com/odvcencio/rhai-hir-go/rhaienv"
	"github.com/odvcencio/rhai-hir-go/rhailog"
	"github.com/odvcencio/rhai-hir-go/workspace"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Ingest the configured workspace and print its HIR",
		RunE:  runDump,
	}
}

func runDump(cmd *cobra.Command, args []string) error {
	workdir := viper.GetString("workdir")
	env := rhaienv.New()

	configPath := viper.GetString("config")
	if configPath == "" {
		found, ok := env.DiscoverConfig(workdir)
		if !ok {
			return fmt.Errorf("no Rhai.toml found under %s; pass --config", workdir)
		}
		configPath = found
	}

	cfg, err := rhaiconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := rhailog.New(os.Stderr, viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	ws := workspace.New(log)
	if err := ws.LoadFromConfig(context.Background(), env, cfg); err != nil {
		return fmt.Errorf("loading workspace: %w", err)
	}

	printWorkspace(cmd.OutOrStdout(), ws)
	return nil
}

func printWorkspace(w io.Writer, ws *workspace.Workspace) {
	h := ws.HIR()

	urls := ws.Documents()
	sort.Strings(urls)
	fmt.Fprintf(w, "sources (%d):\n", len(urls))
	for _, url := range urls {
		doc := ws.Document(url)
		if doc == nil {
			continue
		}
		kind := "script"
		if doc.IsDef {
			kind = "def"
		}
		src, _ := h.Source(doc.Source)
		errCount := 0
		if src != nil {
			errCount = len(src.Syntax.Errors)
		}
		fmt.Fprintf(w, "  %s [%s] (%d parse errors)\n", url, kind, errCount)
		if src != nil {
			for _, e := range src.Syntax.Errors {
				fmt.Fprintf(w, "    ! %s\n", e)
			}
		}
	}

	fmt.Fprintln(w, "symbols:")
	h.Symbols(func(handle hir.SymbolHandle, sym *hir.Symbol) bool {
		fmt.Fprintf(w, "  %s\n", describeSymbol(h, sym))
		return true
	})

	ops := h.Operators()
	fmt.Fprintf(w, "custom operators (%d):\n", len(ops))
	for _, handle := range ops {
		sym, ok := h.Symbol(handle)
		if !ok {
			continue
		}
		op := sym.Kind.(hir.Op)
		fmt.Fprintf(w, "  op %s(%s, %s) bp=%v\n", op.Name, typeKindName(h, op.LHSType), typeKindName(h, op.RHSType), op.BindingPower)
	}
}

func describeSymbol(h *hir.HIR, sym *hir.Symbol) string {
	switch k := sym.Kind.(type) {
	case hir.Decl:
		return fmt.Sprintf("decl %s const=%v param=%v import=%v", k.Name, k.IsConst, k.IsParam, k.IsImport)
	case hir.Fn:
		return fmt.Sprintf("fn %s getter=%v setter=%v", k.Name, k.Getter, k.Setter)
	case hir.Op:
		return fmt.Sprintf("op %s", k.Name)
	case hir.Import:
		resolved := "unresolved"
		if k.Target != nil {
			resolved = "resolved"
		}
		return fmt.Sprintf("import %q (%s)", k.Path, resolved)
	case hir.Reference:
		resolved := "unresolved"
		if k.Target != nil {
			resolved = "resolved"
		}
		return fmt.Sprintf("ref %s (%s)", k.Name, resolved)
	case hir.Path:
		return fmt.Sprintf("path %v", k.Segments)
	case hir.Lit:
		return fmt.Sprintf("lit %q", k.Text)
	case hir.Block:
		return "block"
	case hir.If:
		return "if"
	case hir.Loop:
		return "loop"
	case hir.Switch:
		return "switch"
	default:
		return fmt.Sprintf("%T", sym.Kind)
	}
}

func typeKindName(h *hir.HIR, handle hir.TypeHandle) string {
	t, ok := h.Type(handle)
	if !ok {
		return "?"
	}
	if t.Kind == hir.TypeUser {
		return t.Name
	}
	names := map[hir.TypeKind]string{
		hir.TypeInt: "int", hir.TypeFloat: "float", hir.TypeBool: "bool",
		hir.TypeChar: "char", hir.TypeString: "string", hir.TypeTimestamp: "timestamp",
		hir.TypeVoid: "void", hir.TypeUnknown: "?", hir.TypeNever: "!", hir.TypeModule: "module",
	}
	if name, ok := names[t.Kind]; ok {
		return name
	}
	return "unknown"
}
