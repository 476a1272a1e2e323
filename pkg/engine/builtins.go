package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/rep"
	"github.com/chazu/drafter/pkg/scene"
	"github.com/chazu/drafter/pkg/shape"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: fixed-line -> fixed_line
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp type for passing shapes through the zygomys environment
// ---------------------------------------------------------------------------

// sexpShape wraps a representation built by a builtin so scripts can bind
// it with def.
type sexpShape struct {
	r rep.Representation
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %s)", scene.KindOf(s.r), shortID(s.r.Model().ID()))
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toFloats extracts every element of args as a number.
func toFloats(args []zygo.Sexp) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_fixed) and plain strings ("fixed").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toBool reads a flag value. A bare trailing keyword counts as true.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpInt:
		return v.Val != 0, nil
	}
	if s == zygo.SexpNull {
		return true, nil
	}
	return false, fmt.Errorf("expected boolean, got %T (%s)", s, s.SexpString(nil))
}

// toMode converts a keyword or string to a shape.Mode.
func toMode(s zygo.Sexp) (shape.Mode, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return shape.Free, fmt.Errorf("expected mode keyword (:free, :fixed, :parallel): %w", err)
	}
	return shape.ParseMode(name)
}

// positionalFloats checks that args carries exactly n positional numbers.
func positionalFloats(form string, pa kwArgs, n int) ([]float64, error) {
	if len(pa.positional) != n {
		return nil, fmt.Errorf("%s requires exactly %d numbers, got %d", form, n, len(pa.positional))
	}
	fs, err := toFloats(pa.positional)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", form, err)
	}
	return fs, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builder collects the shapes a script creates, in call order.
type builder struct {
	shapes []rep.Representation
}

func (b *builder) add(r rep.Representation) zygo.Sexp {
	b.shapes = append(b.shapes, r)
	return &sexpShape{r: r}
}

func (b *builder) line(form string, args []zygo.Sexp, mode shape.Mode) (zygo.Sexp, error) {
	pa := parseArgs(args)
	fs, err := positionalFloats(form, pa, 4)
	if err != nil {
		return zygo.SexpNull, err
	}
	if v, ok := pa.kw["mode"]; ok {
		mode, err = toMode(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: mode: %w", form, err)
		}
	}
	v := shape.NewIntVector(shape.NewNode(geom.V(fs[0], fs[1])), shape.NewNode(geom.V(fs[2], fs[3])), mode)
	return b.add(rep.NewVectorRep(v)), nil
}

// registerBuiltins installs the scene builtins into a zygomys environment.
// Each builtin appends the shape it builds to b.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (rect x y w h)
	// -----------------------------------------------------------------------
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		fs, err := positionalFloats("rect", parseArgs(args), 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		return b.add(rep.NewRectRep(shape.NewIntRect(geom.R(fs[0], fs[1], fs[2], fs[3])))), nil
	})

	// -----------------------------------------------------------------------
	// (ellipse x y w h), the bounding box of the ellipse
	// -----------------------------------------------------------------------
	env.AddFunction("ellipse", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		fs, err := positionalFloats("ellipse", parseArgs(args), 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		return b.add(rep.NewEllipseRep(shape.NewIntRect(geom.R(fs[0], fs[1], fs[2], fs[3])))), nil
	})

	// -----------------------------------------------------------------------
	// (text x y "label" :width 160 :height 80)
	// -----------------------------------------------------------------------
	env.AddFunction("text", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("text requires x, y and a string, got %d arguments", len(pa.positional))
		}
		fs, err := toFloats(pa.positional[:2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("text: %w", err)
		}
		s, err := toString(pa.positional[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("text: %w", err)
		}
		size := scene.TextBoxSize
		if v, ok := pa.kw["width"]; ok {
			if size.X, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("text: width: %w", err)
			}
		}
		if v, ok := pa.kw["height"]; ok {
			if size.Y, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("text: height: %w", err)
			}
		}
		box := geom.Rect{Min: geom.V(fs[0], fs[1]), Size: size}
		return b.add(rep.NewTextRep(s, shape.NewIntRect(box))), nil
	})

	// -----------------------------------------------------------------------
	// (line x1 y1 x2 y2 :mode :free)
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.line("line", args, shape.Free)
	})

	// -----------------------------------------------------------------------
	// (fixed-line x1 y1 x2 y2) and (parallel-line x1 y1 x2 y2)
	//
	// Registered with underscores because zygomys does not support hyphens
	// in identifiers; the preprocessor converts the source spelling.
	// -----------------------------------------------------------------------
	env.AddFunction("fixed_line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.line("fixed-line", args, shape.FixedDirection)
	})
	env.AddFunction("parallel_line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.line("parallel-line", args, shape.ParallelDirection)
	})

	// -----------------------------------------------------------------------
	// (node x y)
	// -----------------------------------------------------------------------
	env.AddFunction("node", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		fs, err := positionalFloats("node", parseArgs(args), 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		m := shape.NewIntNode(shape.NewNode(geom.V(fs[0], fs[1])))
		m.SetParentToNodes(m)
		m.Free()
		return b.add(rep.NewNodeRep(m)), nil
	})

	// -----------------------------------------------------------------------
	// (path x1 y1 x2 y2 ... :closed true)
	// -----------------------------------------------------------------------
	env.AddFunction("path", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		n := len(pa.positional)
		if n < 4 || n%2 != 0 {
			return zygo.SexpNull, fmt.Errorf("path requires at least two x y pairs, got %d numbers", n)
		}
		fs, err := toFloats(pa.positional)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("path: %w", err)
		}
		closed := false
		if v, ok := pa.kw["closed"]; ok {
			if closed, err = toBool(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("path: closed: %w", err)
			}
		}
		if closed && n < 6 {
			return zygo.SexpNull, fmt.Errorf("path: a closed path needs at least three points")
		}

		p := shape.NewIntPath()
		for i := 0; i < n; i += 2 {
			p.AddPoint(geom.V(fs[i], fs[i+1]))
		}
		if closed {
			p.Close()
		}
		return b.add(rep.NewPathRep(p)), nil
	})
}
