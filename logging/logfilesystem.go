package logging

import (
	"os"
)

// LogFile is an append-only handle to one results log file.
type LogFile interface {
	Append(content []byte) (err error)
}

// LogFileSystem abstracts the file operations the results logger needs, so
// tests can capture log lines without touching the disk.
type LogFileSystem interface {
	MkDir(dirname string) error
	Open(name string) (f LogFile, err error)
}

// LogFileImpl is a LogFile over a real OS file.
type LogFileImpl struct {
	f *os.File
}

// Append writes the given bytes at the end of the log file.
func (fs *LogFileImpl) Append(content []byte) (err error) {
	_, err = fs.f.Write(content)
	return
}

// LogFileSystemImpl is a LogFileSystem over the real file system.
type LogFileSystemImpl struct {
}

// MkDir creates the log directory, parents included. An already existing
// directory is fine.
func (fs *LogFileSystemImpl) MkDir(name string) error {
	return os.MkdirAll(name, 0777)
}

// Open opens the log file for appending, creating it if needed.
func (fs *LogFileSystemImpl) Open(name string) (ff LogFile, err error) {
	var f *os.File
	f, err = os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	ff = &LogFileImpl{
		f: f,
	}
	return
}
