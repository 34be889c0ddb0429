package upload

import (
	"testing"
)

func TestValuesOrderAndDuplicates(t *testing.T) {
	// Arrange
	v := NewValues()

	// Act
	v.Add("b", "1")
	v.Add("a", "2")
	v.Add("b", "3")

	// Assert
	keys := v.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("Got unexpected keys: %v", keys)
	}

	if v.Get("b") != "3" {
		t.Fatalf("Got unexpected last value: %q", v.Get("b"))
	}

	all := v.GetAll("b")
	if len(all) != 2 || all[0] != "1" || all[1] != "3" {
		t.Fatalf("Got unexpected values: %v", all)
	}

	if v.Get("missing") != "" {
		t.Fatalf("Got unexpected value for missing key")
	}
}

func TestFilesCloseClosesAll(t *testing.T) {
	// Arrange
	f := NewFiles()
	c1 := &closeCountingFile{}
	c2 := &closeCountingFile{}
	f.Add("a", c1)
	f.Add("a", c2)

	// Act
	f.Close()

	// Assert
	if c1.closed != 1 || c2.closed != 1 {
		t.Fatalf("Got unexpected close counts: %v, %v", c1.closed, c2.closed)
	}
}

type closeCountingFile struct {
	MemoryUploadedFile
	closed int
}

func (f *closeCountingFile) Close() error {
	f.closed++
	return nil
}
