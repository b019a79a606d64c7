//go:build !windows

package shell

func openWith(file, args string) error {
	return ErrUnsupported
}

func createShortcut(linkPath, target, args, description string) error {
	return ErrUnsupported
}
