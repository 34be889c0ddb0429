package upload

// Values is a multi-valued field-name to value-list mapping that preserves
// insertion order, both across keys and within one key.
type Values struct {
	keys []string
	m    map[string][]string
}

// NewValues creates an empty Values.
func NewValues() *Values {
	return &Values{m: make(map[string][]string)}
}

// Add appends a value under the given key.
func (v *Values) Add(key, value string) {
	if _, ok := v.m[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.m[key] = append(v.m[key], value)
}

// Get returns the last value added under the key, or "".
func (v *Values) Get(key string) string {
	vv := v.m[key]
	if len(vv) == 0 {
		return ""
	}
	return vv[len(vv)-1]
}

// GetAll returns all values added under the key, in arrival order.
func (v *Values) GetAll(key string) []string { return v.m[key] }

// Keys returns the keys in first-appearance order.
func (v *Values) Keys() []string { return v.keys }

// Len returns the number of distinct keys.
func (v *Values) Len() int { return len(v.keys) }

// Files is a multi-valued field-name to UploadedFile-list mapping that
// preserves insertion order, both across keys and within one key.
type Files struct {
	keys []string
	m    map[string][]UploadedFile
}

// NewFiles creates an empty Files.
func NewFiles() *Files {
	return &Files{m: make(map[string][]UploadedFile)}
}

// Add appends a file under the given key.
func (f *Files) Add(key string, file UploadedFile) {
	if _, ok := f.m[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.m[key] = append(f.m[key], file)
}

// Get returns the last file added under the key, or nil.
func (f *Files) Get(key string) UploadedFile {
	ff := f.m[key]
	if len(ff) == 0 {
		return nil
	}
	return ff[len(ff)-1]
}

// GetAll returns all files added under the key, in arrival order.
func (f *Files) GetAll(key string) []UploadedFile { return f.m[key] }

// Keys returns the keys in first-appearance order.
func (f *Files) Keys() []string { return f.keys }

// Len returns the number of distinct keys.
func (f *Files) Len() int { return len(f.keys) }

// Close closes every file in the map. The map owns completed files until the
// consumer takes them, so this runs on every parser exit path.
func (f *Files) Close() {
	for _, key := range f.keys {
		for _, file := range f.m[key] {
			file.Close()
		}
	}
}

// Result is what the rest of the framework consumes after a request body parse.
type Result struct {
	Values *Values
	Files  *Files
}

// NewResult creates a Result with empty maps.
func NewResult() *Result {
	return &Result{Values: NewValues(), Files: NewFiles()}
}
