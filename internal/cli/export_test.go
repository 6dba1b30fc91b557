package cli

import "github.com/briandowns/spinner"

// SetSpinnerFactory swaps newSpinner for a test and returns the restore func.
func SetSpinnerFactory(f func(...spinner.Option) Spinner) (restore func()) {
	orig := newSpinner
	newSpinner = f
	return func() { newSpinner = orig }
}
