package engine

import (
	"fmt"
	"math"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/scanbit/scanbit/internal/tree"
)

const (
	defaultScanner      = "random"
	defaultOutputPath   = "scanbit_run_data/unnamed_run"
	defaultOutputFile   = "samples.jsonl"
	defaultInvalidBelow = -1e6
)

// plan is everything Sampler reads from the settings tree.
type plan struct {
	// free parameter names in unit-cube order, with one transform each.
	free       []string
	transforms []transform
	fixed      map[string]float64

	scanner  string
	plugin   string
	settings *tree.Node
	seed     *int64

	invalidBelow float64

	printer    string
	outputDir  string
	outputFile string
	truncate   bool
}

// physical maps a unit-cube point to the parameter map the objective sees.
func (p *plan) physical(u []float64) map[string]float64 {
	out := make(map[string]float64, len(p.free)+len(p.fixed))
	for k, v := range p.fixed {
		out[k] = v
	}
	for i, name := range p.free {
		out[name] = p.transforms[i](u[i])
	}
	return out
}

func settingsErr(path, format string, args ...any) error {
	return fmt.Errorf("settings %s: %s", path, fmt.Sprintf(format, args...))
}

func parsePlan(root *tree.Node) (*plan, error) {
	if root.Kind() != tree.KindMap {
		return nil, settingsErr("/", "expected a mapping, got %s", root.Kind())
	}
	p := &plan{fixed: map[string]float64{}}
	if err := p.parseParameters(root.Get("Parameters")); err != nil {
		return nil, err
	}
	if err := p.parsePriors(root.Get("Priors")); err != nil {
		return nil, err
	}
	if err := p.parseScanner(root.Get("Scanner")); err != nil {
		return nil, err
	}
	if err := p.parseKeyValues(root.Get("KeyValues")); err != nil {
		return nil, err
	}
	if err := p.parsePrinter(root.Get("Printer")); err != nil {
		return nil, err
	}
	return p, nil
}

// parseParameters reads Parameters: model -> par -> spec. A null spec is a
// free parameter that a Priors entry must cover; a number or fixed_value
// pins it; a range declares its own flat (or prior_type) prior.
func (p *plan) parseParameters(n *tree.Node) error {
	if n.Kind() != tree.KindMap {
		return settingsErr("/Parameters", "missing or not a mapping")
	}
	for _, model := range n.Entries() {
		mpath := "/Parameters/" + model.Key
		if model.Value.Kind() != tree.KindMap {
			return settingsErr(mpath, "expected a mapping of parameters, got %s", model.Value.Kind())
		}
		for _, par := range model.Value.Entries() {
			name := model.Key + "::" + par.Key
			path := mpath + "/" + par.Key
			spec := par.Value
			if v, ok := spec.Number(); ok {
				p.fixed[name] = v
				continue
			}
			switch spec.Kind() {
			case tree.KindNull:
				p.free = append(p.free, name)
				p.transforms = append(p.transforms, nil)
			case tree.KindMap:
				if spec.Has("fixed_value") {
					fv := spec.Get("fixed_value")
					v, ok := fv.Number()
					if !ok {
						return settingsErr(path+"/fixed_value", "expected a number, got %s", fv.Kind())
					}
					p.fixed[name] = v
					continue
				}
				var tr transform
				if spec.Has("range") {
					kind, _ := spec.Get("prior_type").AsString()
					if kind == "" {
						kind = "flat"
					}
					var err error
					if tr, err = rangePrior(kind, spec.Get("range"), path); err != nil {
						return err
					}
				}
				p.free = append(p.free, name)
				p.transforms = append(p.transforms, tr)
			default:
				return settingsErr(path, "unsupported parameter spec of kind %s", spec.Kind())
			}
		}
	}
	return nil
}

func rangePrior(kind string, rng *tree.Node, path string) (transform, error) {
	bounds, ok := rng.Numbers()
	if !ok || len(bounds) != 2 {
		return nil, settingsErr(path+"/range", "expected [lo, hi]")
	}
	var (
		tr  transform
		err error
	)
	switch kind {
	case "flat":
		tr, err = flat(bounds[0], bounds[1])
	case "log":
		tr, err = logUniform(bounds[0], bounds[1])
	default:
		return nil, settingsErr(path+"/prior_type", "prior %q does not take a range", kind)
	}
	if err != nil {
		return nil, settingsErr(path+"/range", "%v", err)
	}
	return tr, nil
}

// parsePriors reads Priors: name -> {prior_type, parameters, range | mean, cov}.
// Entries in parameters are glob patterns over the free parameter names.
func (p *plan) parsePriors(n *tree.Node) error {
	index := make(map[string]int, len(p.free))
	for i, name := range p.free {
		index[name] = i
	}
	for _, e := range n.Entries() {
		path := "/Priors/" + e.Key
		spec := e.Value
		if spec.Kind() != tree.KindMap {
			return settingsErr(path, "expected a mapping, got %s", spec.Kind())
		}
		kind, ok := spec.Get("prior_type").AsString()
		if !ok {
			return settingsErr(path+"/prior_type", "missing")
		}
		patterns, ok := spec.Get("parameters").AsStrings()
		if !ok || len(patterns) == 0 {
			return settingsErr(path+"/parameters", "expected a non-empty list of parameter names")
		}
		targets, err := p.matchParameters(patterns, path)
		if err != nil {
			return err
		}
		for j, name := range targets {
			i := index[name]
			if p.transforms[i] != nil {
				return settingsErr(path, "parameter %s already has a prior", name)
			}
			tr, err := priorFor(kind, spec, j, len(targets), path)
			if err != nil {
				return err
			}
			p.transforms[i] = tr
		}
	}
	for i, name := range p.free {
		if p.transforms[i] == nil {
			return settingsErr("/Priors", "no prior for parameter %s", name)
		}
	}
	return nil
}

func (p *plan) matchParameters(patterns []string, path string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return nil, settingsErr(path+"/parameters", "invalid pattern %q", pat)
		}
		matched := false
		for _, name := range p.free {
			if ok, _ := doublestar.Match(pat, name); ok {
				matched = true
				if !seen[name] {
					seen[name] = true
					out = append(out, name)
				}
			}
		}
		if !matched {
			if _, fixed := p.fixed[pat]; fixed {
				return nil, settingsErr(path+"/parameters", "parameter %s is fixed", pat)
			}
			return nil, settingsErr(path+"/parameters", "%q matches no free parameter", pat)
		}
	}
	return out, nil
}

// priorFor builds the transform for the j-th of count parameters under one
// prior entry. mean and cov may hold one value per parameter or a single
// value shared by all.
func priorFor(kind string, spec *tree.Node, j, count int, path string) (transform, error) {
	switch kind {
	case "flat", "log":
		return rangePrior(kind, spec.Get("range"), path)
	case "gaussian", "cauchy":
		mean, err := component(spec.Get("mean"), j, count, path+"/mean")
		if err != nil {
			return nil, err
		}
		cov, err := component(spec.Get("cov"), j, count, path+"/cov")
		if err != nil {
			return nil, err
		}
		var tr transform
		if kind == "gaussian" {
			tr, err = gaussian(mean, cov)
		} else {
			tr, err = cauchy(mean, cov)
		}
		if err != nil {
			return nil, settingsErr(path, "%v", err)
		}
		return tr, nil
	default:
		return nil, settingsErr(path+"/prior_type", "unknown prior %q (available: flat, log, gaussian, cauchy)", kind)
	}
}

func component(n *tree.Node, j, count int, path string) (float64, error) {
	if v, ok := n.Number(); ok {
		return v, nil
	}
	vs, ok := n.Numbers()
	switch {
	case !ok:
		return 0, settingsErr(path, "expected a number or a list of numbers")
	case len(vs) == 1:
		return vs[0], nil
	case len(vs) == count:
		return vs[j], nil
	default:
		return 0, settingsErr(path, "has %d entries for %d parameters", len(vs), count)
	}
}

// parseScanner reads Scanner: {use_scanner, scanners: name -> {plugin, ...}}.
// A scanner without an entry under scanners uses the plugin of the same name.
func (p *plan) parseScanner(n *tree.Node) error {
	p.scanner = defaultScanner
	if name, ok := n.Get("use_scanner").AsString(); ok && name != "" {
		p.scanner = name
	}
	p.plugin = p.scanner
	p.settings = n.Get("scanners").Get(p.scanner)
	if k := p.settings.Kind(); k != tree.KindNull && k != tree.KindMap {
		return settingsErr("/Scanner/scanners/"+p.scanner, "expected a mapping, got %s", p.settings.Kind())
	}
	if plugin, ok := p.settings.Get("plugin").AsString(); ok && plugin != "" {
		p.plugin = plugin
	}
	if seed := p.settings.Get("seed"); seed.Kind() != tree.KindNull {
		v, ok := seed.AsInt()
		if !ok {
			return settingsErr("/Scanner/scanners/"+p.scanner+"/seed", "expected an integer, got %s", seed.Kind())
		}
		p.seed = &v
	}
	return nil
}

func (p *plan) parseKeyValues(n *tree.Node) error {
	p.outputDir = defaultOutputPath
	if dir, ok := n.Get("default_output_path").AsString(); ok && dir != "" {
		p.outputDir = dir
	}
	p.invalidBelow = defaultInvalidBelow
	if th := n.Get("likelihood").Get("model_invalid_for_lnlike_below"); th.Kind() != tree.KindNull {
		v, ok := th.Number()
		if !ok || math.IsNaN(v) {
			return settingsErr("/KeyValues/likelihood/model_invalid_for_lnlike_below", "expected a number")
		}
		p.invalidBelow = v
	}
	return nil
}

func (p *plan) parsePrinter(n *tree.Node) error {
	p.printer = "jsonl"
	if kind, ok := n.Get("printer").AsString(); ok && kind != "" {
		p.printer = kind
	}
	opts := n.Get("options")
	p.outputFile = defaultOutputFile
	if f, ok := opts.Get("output_file").AsString(); ok && f != "" {
		p.outputFile = f
	}
	p.truncate = true
	if del := opts.Get("delete_file_on_restart"); del.Kind() != tree.KindNull {
		v, ok := del.AsBool()
		if !ok {
			return settingsErr("/Printer/options/delete_file_on_restart", "expected a boolean")
		}
		p.truncate = v
	}
	return nil
}
