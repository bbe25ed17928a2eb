package models

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// A Param is one user-tunable halftone setting.
type Param struct {
	Name string
	Help string
	get  func(halftone.Config) string
	set  func(*halftone.Config, string) error
}

// Params lists every parameter, in display order.
var Params = []Param{
	{
		Name: "cell_size",
		Help: "dot cell edge in pixels",
		get:  func(c halftone.Config) string { return strconv.Itoa(c.CellSize) },
		set:  intSetter(func(c *halftone.Config, v int) { c.CellSize = v }),
	},
	{
		Name: "brightness",
		Help: "offset added to every gray level",
		get:  func(c halftone.Config) string { return formatFloat(c.Brightness) },
		set:  floatSetter(func(c *halftone.Config, v float64) { c.Brightness = v }),
	},
	{
		Name: "contrast",
		Help: "contrast, strictly between -255 and 255",
		get:  func(c halftone.Config) string { return formatFloat(c.Contrast) },
		set:  floatSetter(func(c *halftone.Config, v float64) { c.Contrast = v }),
	},
	{
		Name: "gamma",
		Help: "tone curve exponent, > 0",
		get:  func(c halftone.Config) string { return formatFloat(c.Gamma) },
		set:  floatSetter(func(c *halftone.Config, v float64) { c.Gamma = v }),
	},
	{
		Name: "smoothing",
		Help: "box blur passes, may be fractional",
		get:  func(c halftone.Config) string { return formatFloat(c.Smoothing) },
		set:  floatSetter(func(c *halftone.Config, v float64) { c.Smoothing = v }),
	},
	{
		Name: "dither",
		Help: "None, FloydSteinberg, Ordered or Noise",
		get:  func(c halftone.Config) string { return c.Dither.String() },
		set: func(c *halftone.Config, s string) error {
			m, err := halftone.ParseDitherMode(s)
			if err != nil {
				return err
			}
			c.Dither = m
			return nil
		},
	},
	{
		Name: "scale",
		Help: "supersampling factor, >= 1",
		get:  func(c halftone.Config) string { return strconv.Itoa(c.Scale) },
		set:  intSetter(func(c *halftone.Config, v int) { c.Scale = v }),
	},
}

func intSetter(fn func(*halftone.Config, int)) func(*halftone.Config, string) error {
	return func(c *halftone.Config, s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%q is not an integer", s)
		}
		fn(c, v)
		return nil
	}
}

func floatSetter(fn func(*halftone.Config, float64)) func(*halftone.Config, string) error {
	return func(c *halftone.Config, s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		fn(c, v)
		return nil
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ClosestParam finds the parameter whose name is closest to name.
func ClosestParam(name string) (best Param, score int) {
	key := strings.ToLower(strings.ReplaceAll(name, "-", "_"))
	score = math.MaxInt
	for _, p := range Params {
		d := levenshtein.DistanceForStrings([]rune(key), []rune(p.Name), levenshtein.DefaultOptions)
		if d < score {
			best = p
			score = d
		}
	}
	return
}

// LookupParam returns the parameter called name. Small typos (edit distance
// up to 2) and unambiguous prefixes are accepted.
func LookupParam(name string) (Param, error) {
	key := strings.ToLower(strings.ReplaceAll(name, "-", "_"))
	if key == "" {
		return Param{}, fmt.Errorf("empty parameter name")
	}
	var prefixed []Param
	for _, p := range Params {
		if p.Name == key {
			return p, nil
		}
		if strings.HasPrefix(p.Name, key) {
			prefixed = append(prefixed, p)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}
	if p, score := ClosestParam(key); score <= 2 {
		return p, nil
	}
	return Param{}, fmt.Errorf("no such parameter %q (known: %s)", name, strings.Join(ParamNames(), ", "))
}

// ParamNames returns the names of all parameters.
func ParamNames() []string {
	names := make([]string, len(Params))
	for i, p := range Params {
		names[i] = p.Name
	}
	return names
}

// ParamStore holds the current halftone parameters of independent scopes
// (e.g. one per Discord channel), falling back to shared defaults. It is
// safe for concurrent use and keeps nothing across restarts.
type ParamStore struct {
	mu       sync.RWMutex
	defaults halftone.Config
	scopes   map[string]halftone.Config
}

// NewParamStore creates a store whose scopes start from defaults.
func NewParamStore(defaults halftone.Config) *ParamStore {
	return &ParamStore{
		defaults: defaults,
		scopes:   make(map[string]halftone.Config),
	}
}

// Defaults returns the default parameters.
func (s *ParamStore) Defaults() halftone.Config {
	return s.defaults
}

// Config returns a snapshot of the parameters of scope.
func (s *ParamStore) Config(scope string) halftone.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.scopes[scope]; ok {
		return c
	}
	return s.defaults
}

// Get returns the formatted value of a parameter.
func (s *ParamStore) Get(scope, name string) (string, error) {
	p, err := LookupParam(name)
	if err != nil {
		return "", err
	}
	return p.get(s.Config(scope)), nil
}

// Set changes one parameter of scope. The change is rejected if the
// resulting configuration is invalid. It returns the canonical name of the
// parameter that was set.
func (s *ParamStore) Set(scope, name, value string) (string, error) {
	p, err := LookupParam(name)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.scopes[scope]
	if !ok {
		c = s.defaults
	}
	if c, err = p.Apply(c, value); err != nil {
		return "", err
	}
	s.scopes[scope] = c
	return p.Name, nil
}

// Apply returns c with the parameter set to value. The result is validated
// as a whole so an invalid combination is never returned.
func (p Param) Apply(c halftone.Config, value string) (halftone.Config, error) {
	if err := p.set(&c, value); err != nil {
		return c, fmt.Errorf("%s: %w", p.Name, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Value formats the parameter as found in c.
func (p Param) Value(c halftone.Config) string {
	return p.get(c)
}

// Reset restores the defaults of scope.
func (s *ParamStore) Reset(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scopes, scope)
}

// Values returns every parameter of scope as name/value pairs, in display
// order.
func (s *ParamStore) Values(scope string) [][2]string {
	return Values(s.Config(scope))
}

// Values formats every parameter of c.
func Values(c halftone.Config) [][2]string {
	out := make([][2]string, len(Params))
	for i, p := range Params {
		out[i] = [2]string{p.Name, p.get(c)}
	}
	return out
}

// Scopes returns the scopes that differ from the defaults, sorted.
func (s *ParamStore) Scopes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scopes := make([]string, 0, len(s.scopes))
	for k := range s.scopes {
		scopes = append(scopes, k)
	}
	sort.Strings(scopes)
	return scopes
}

// WriteTable lays out the parameters of current next to their defaults.
func WriteTable(w io.Writer, current, defaults halftone.Config) error {
	tw := tabwriter.NewWriter(w, 5, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVALUE\tDEFAULT\tDESCRIPTION\t")
	for _, p := range Params {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", p.Name, p.get(current), p.get(defaults), p.Help)
	}
	return tw.Flush()
}
