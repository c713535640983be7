package vanmaps

// ConfigurationError indicates a caller-supplied bin/palette configuration
// that cannot be rendered.  It is always raised before any drawing or file
// creation happens.
type ConfigurationError struct {
	Message string
}

func (self *ConfigurationError) Error() string {
	return self.Message
}

func configError(message string) error {
	return &ConfigurationError{
		Message: message,
	}
}

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	if err == nil {
		return false
	}

	_, ok := err.(*ConfigurationError)
	return ok
}
