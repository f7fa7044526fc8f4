package vlc

// Config configures a Factory.
type Config struct {
	// Args are passed to libvlc_new as-is (e.g. "--no-video", "--quiet").
	Args []string

	// LibraryPath is the libvlc shared library to load. Empty means search
	// the standard locations.
	LibraryPath string

	// UserAgent, when UserAgentName is set, is applied with
	// libvlc_set_user_agent right after the instance is created.
	UserAgentName string
	UserAgentHTTP string

	// ApplicationID, when set, is applied with libvlc_set_app_id.
	ApplicationID      string
	ApplicationVersion string
	ApplicationIcon    string

	symbols *libvlcSymbols
}

// Option mutates a Config.
type Option func(*Config)

// WithArgs appends libvlc command-line style arguments.
func WithArgs(args ...string) Option {
	return func(c *Config) {
		c.Args = append(c.Args, args...)
	}
}

// WithLibraryPath sets the libvlc shared library to load.
func WithLibraryPath(path string) Option {
	return func(c *Config) {
		c.LibraryPath = path
	}
}

// WithUserAgent sets the human-readable application name and the HTTP user
// agent libvlc reports.
func WithUserAgent(name, http string) Option {
	return func(c *Config) {
		c.UserAgentName = name
		c.UserAgentHTTP = http
	}
}

// WithApplicationID sets the application identification (e.g.
// "com.example.player"), version and icon name.
func WithApplicationID(id, version, icon string) Option {
	return func(c *Config) {
		c.ApplicationID = id
		c.ApplicationVersion = version
		c.ApplicationIcon = icon
	}
}

// withSymbols makes the factory use the given symbol table instead of
// loading libvlc.
func withSymbols(s *libvlcSymbols) Option {
	return func(c *Config) {
		c.symbols = s
	}
}

func newConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
