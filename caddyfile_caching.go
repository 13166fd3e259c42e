package moviegraph

import (
	"net/url"

	"github.com/caddyserver/caddy/v2"
	"github.com/caddyserver/caddy/v2/caddyconfig/caddyfile"
	"github.com/jensneuse/graphql-go-tools/pkg/graphql"
)

// nolint:gocyclo
func (h *Handler) unmarshalCaddyfileCaching(d *caddyfile.Dispenser) (err error) {
	enabled := true
	caching := new(Caching)

	for d.Next() {
		for d.NextBlock(0) {
			switch d.Val() {
			case "enabled":
				enabled, err = parseCaddyfileBool(d)
			case "store_dsn":
				if !d.NextArg() {
					return d.ArgErr()
				}

				if _, err = url.Parse(d.Val()); err == nil {
					caching.StoreDsn = d.Val()
				}
			case "rules":
				err = caching.unmarshalCaddyfileRules(d.NewFromNextSegment())
			case "type_keys":
				err = caching.unmarshalCaddyfileTypeKeys(d.NewFromNextSegment())
			case "auto_invalidate_cache":
				caching.AutoInvalidate, err = parseCaddyfileBool(d)
			case "debug_headers":
				caching.DebugHeaders, err = parseCaddyfileBool(d)
			default:
				return d.Errf("unrecognized subdirective %s", d.Val())
			}

			if err != nil {
				return err
			}
		}
	}

	if enabled {
		h.Caching = caching
	}

	return nil
}

func (c *Caching) unmarshalCaddyfileRules(d *caddyfile.Dispenser) error {
	rules := make(CachingRules)

	for d.Next() {
		for d.NextBlock(0) {
			name := d.Val()
			rule := new(CachingRule)

			if _, exists := rules[name]; exists {
				return d.Errf("duplicate caching rule: %s", name)
			}

			for nesting := d.Nesting(); d.NextBlock(nesting); {
				var err error

				switch d.Val() {
				case "types":
					rule.Types, err = unmarshalCaddyfileRequestTypes(d.NewFromNextSegment())
				case "max_age":
					rule.MaxAge, err = parseCaddyfileDuration(d)
				case "swr":
					rule.Swr, err = parseCaddyfileDuration(d)
				default:
					return d.Errf("unrecognized subdirective %s", d.Val())
				}

				if err != nil {
					return err
				}
			}

			rules[name] = rule
		}
	}

	c.Rules = rules

	return nil
}

func (c *Caching) unmarshalCaddyfileTypeKeys(d *caddyfile.Dispenser) error {
	typeKeys := make(graphql.RequestTypes)

	for d.Next() {
		for d.NextBlock(0) {
			typeName := d.Val()
			args := d.RemainingArgs()

			if len(args) == 0 {
				return d.ArgErr()
			}

			fields := make(graphql.RequestFields)

			for _, field := range args {
				fields[field] = struct{}{}
			}

			typeKeys[typeName] = fields
		}
	}

	c.TypeKeys = typeKeys

	return nil
}

// unmarshalCaddyfileRequestTypes reads type lines, a type without fields matches any of its fields.
func unmarshalCaddyfileRequestTypes(d *caddyfile.Dispenser) (graphql.RequestTypes, error) {
	types := make(graphql.RequestTypes)

	for d.Next() {
		for d.NextBlock(0) {
			typeName := d.Val()

			if _, exists := types[typeName]; exists {
				return nil, d.Errf("%s already specified", typeName)
			}

			fields := make(graphql.RequestFields)

			for _, field := range d.RemainingArgs() {
				fields[field] = struct{}{}
			}

			types[typeName] = fields
		}
	}

	return types, nil
}

func parseCaddyfileDuration(d *caddyfile.Dispenser) (caddy.Duration, error) {
	if !d.NextArg() {
		return 0, d.ArgErr()
	}

	v, err := caddy.ParseDuration(d.Val())

	if err != nil {
		return 0, d.Errf("%s: %v", d.Val(), err)
	}

	return caddy.Duration(v), nil
}
