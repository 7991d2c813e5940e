package server

import (
	"net/url"
	"strconv"

	"github.com/matzehuels/tabooprint/pkg/errors"
	"github.com/matzehuels/tabooprint/pkg/layout"
)

// layoutOverrides holds the per-request changes to the default layout. Nil
// fields keep the default.
type layoutOverrides struct {
	Paper      *string  `json:"paper,omitempty"`
	Landscape  *bool    `json:"landscape,omitempty"`
	Columns    *int     `json:"columns,omitempty"`
	Rows       *int     `json:"rows,omitempty"`
	CardWidth  *float64 `json:"card_width,omitempty"`
	CardHeight *float64 `json:"card_height,omitempty"`
	Margin     *float64 `json:"margin,omitempty"`
	Duplex     *string  `json:"duplex,omitempty"`
}

// apply merges o into base and validates the result.
func (o layoutOverrides) apply(base layout.PageConfig) (layout.PageConfig, error) {
	cfg := base
	if o.Paper != nil {
		p, err := layout.PaperByName(*o.Paper)
		if err != nil {
			return layout.PageConfig{}, err
		}
		cfg.Paper = p
	}
	if o.Landscape != nil && *o.Landscape {
		cfg.Paper = cfg.Paper.Landscape()
	}
	if o.Columns != nil {
		cfg.Columns = *o.Columns
	}
	if o.Rows != nil {
		cfg.Rows = *o.Rows
	}
	if o.CardWidth != nil {
		cfg.CardWidth = *o.CardWidth
	}
	if o.CardHeight != nil {
		cfg.CardHeight = *o.CardHeight
	}
	if o.Margin != nil {
		cfg.Margin = *o.Margin
	}
	if o.Duplex != nil {
		d, err := layout.ParseDuplex(*o.Duplex)
		if err != nil {
			return layout.PageConfig{}, err
		}
		cfg.Duplex = d
	}
	return cfg, cfg.Validate()
}

// overridesFromQuery reads layout overrides from URL query parameters.
func overridesFromQuery(q url.Values) (layoutOverrides, error) {
	var o layoutOverrides
	if v := q.Get("paper"); v != "" {
		o.Paper = &v
	}
	if v := q.Get("duplex"); v != "" {
		o.Duplex = &v
	}
	if v := q.Get("landscape"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return o, badParam("landscape", v)
		}
		o.Landscape = &b
	}
	for _, p := range []struct {
		name string
		dst  **int
	}{{"columns", &o.Columns}, {"rows", &o.Rows}} {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return o, badParam(p.name, v)
			}
			*p.dst = &n
		}
	}
	if v := q.Get("margin"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return o, badParam("margin", v)
		}
		o.Margin = &f
	}
	return o, nil
}

func badParam(name, value string) error {
	return errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, value)
}
