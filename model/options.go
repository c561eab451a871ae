package model

// DefaultMessage is the message of validation errors returned by Parse and Bind.
const DefaultMessage = "response body does not match model"

// Option configures how responses are parsed.
type Option interface {
	Apply(*Config)
}

// Config holds parse settings.
type Config struct {
	// Statuses limits validation to the listed statuses. Empty means every status.
	Statuses []int
	// Strict rejects object properties the model does not declare.
	Strict bool
	// Message is the top level message of validation errors.
	Message string
}

// OptionFunc is a function that configures a parse config.
type OptionFunc func(*Config)

// Apply calls f(config).
func (f OptionFunc) Apply(config *Config) {
	f(config)
}

// WithStatuses returns an option that validates and decodes only responses
// with one of the given statuses. Other responses yield the zero model, their
// status and no error.
func WithStatuses(codes ...int) Option {
	return OptionFunc(func(c *Config) {
		c.Statuses = append(c.Statuses, codes...)
	})
}

// WithStrict returns an option that rejects undeclared object properties.
func WithStrict() Option {
	return OptionFunc(func(c *Config) {
		c.Strict = true
	})
}

// WithMessage returns an option that sets the validation error message.
func WithMessage(value string) Option {
	return OptionFunc(func(c *Config) {
		c.Message = value
	})
}

func newConfig(options []Option) Config {
	config := Config{
		Message: DefaultMessage,
	}
	for _, opt := range options {
		opt.Apply(&config)
	}
	return config
}

func (c Config) validates(status int) bool {
	if len(c.Statuses) == 0 {
		return true
	}
	for _, s := range c.Statuses {
		if s == status {
			return true
		}
	}
	return false
}
