package disk

import (
	"os"
)

// OpenTempOSFile returns an OSFile backed by a fresh temporary file and a
// cleanup func that closes and removes it.
func OpenTempOSFile(pattern string) (*OSFile, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, nil, err
	}
	path := f.Name()
	f.Close()
	os.Remove(path)

	osf, err := OpenOSFile(path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		osf.Close()
		os.Remove(path)
	}
	return osf, cleanup, nil
}
