package dom

import "bytes"

// Typical tags carry only a couple of attributes, so the store keeps up to
// inlineAttrs entries in a fixed array scanned linearly. Past that threshold
// it promotes to a heap slice with a hashed key index. Insertion order is
// preserved across every operation.
const inlineAttrs = 4

// Attribute is a single key/value pair. HasValue distinguishes a bare
// attribute (`key`, false) from an empty value (`key=""`, true).
type Attribute struct {
	Key      Bytes
	Value    Bytes
	HasValue bool
}

// Attributes stores an element's attributes in insertion order. The id and
// class values, when present, are cached on the store so lookups for them
// avoid a scan.
type Attributes struct {
	inline [inlineAttrs]Attribute
	n      uint8
	spill  []Attribute    // all entries, once promoted
	index  map[string]int // key -> entry position, once promoted

	id       Bytes
	class    Bytes
	hasID    bool
	hasClass bool
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a.index != nil {
		return len(a.spill)
	}
	return int(a.n)
}

// Entries returns the attributes in insertion order. The slice is a view into
// the store; it must not be appended to.
func (a *Attributes) Entries() []Attribute {
	if a.index != nil {
		return a.spill
	}
	return a.inline[:a.n]
}

func (a *Attributes) at(i int) *Attribute {
	if a.index != nil {
		return &a.spill[i]
	}
	return &a.inline[i]
}

func (a *Attributes) find(key string) int {
	if a.index != nil {
		if i, ok := a.index[key]; ok {
			return i
		}
		return -1
	}
	for i := 0; i < int(a.n); i++ {
		if string(a.inline[i].Key.raw) == key {
			return i
		}
	}
	return -1
}

func (a *Attributes) findBytes(key []byte) int {
	if a.index != nil {
		if i, ok := a.index[string(key)]; ok {
			return i
		}
		return -1
	}
	for i := 0; i < int(a.n); i++ {
		if bytes.Equal(a.inline[i].Key.raw, key) {
			return i
		}
	}
	return -1
}

// put inserts or replaces an entry. The original key bytes and position are
// kept when the key already exists.
func (a *Attributes) put(key, val Bytes, hasVal bool) {
	if i := a.findBytes(key.raw); i >= 0 {
		e := a.at(i)
		e.Value, e.HasValue = val, hasVal
	} else {
		if a.index == nil && int(a.n) == inlineAttrs {
			a.promote()
		}
		if a.index != nil {
			a.index[string(key.raw)] = len(a.spill)
			a.spill = append(a.spill, Attribute{Key: key, Value: val, HasValue: hasVal})
		} else {
			a.inline[a.n] = Attribute{Key: key, Value: val, HasValue: hasVal}
			a.n++
		}
	}
	a.noteSpecial(key.raw, val, hasVal)
}

// promote moves the inline entries to heap storage and builds the key index.
// Linear scans stop paying off around this size.
func (a *Attributes) promote() {
	a.spill = make([]Attribute, int(a.n), inlineAttrs*2)
	copy(a.spill, a.inline[:a.n])
	a.index = make(map[string]int, inlineAttrs*2)
	for i := range a.spill {
		a.index[a.spill[i].Key.String()] = i
	}
	a.n = 0
}

func (a *Attributes) noteSpecial(key []byte, val Bytes, hasVal bool) {
	switch string(key) {
	case "id":
		if hasVal {
			a.id, a.hasID = val, true
		} else {
			a.id, a.hasID = Bytes{}, false
		}
	case "class":
		if hasVal {
			a.class, a.hasClass = val, true
		} else {
			a.class, a.hasClass = Bytes{}, false
		}
	}
}

// Get returns the value for key. Found reports whether the attribute exists;
// a bare attribute yields a zero Bytes with found == true.
func (a *Attributes) Get(key string) (val Bytes, found bool) {
	i := a.find(key)
	if i < 0 {
		return Bytes{}, false
	}
	return a.at(i).Value, true
}

// Attr returns a pointer to the entry for key, or nil. The pointer stays
// valid until the next insertion.
func (a *Attributes) Attr(key string) *Attribute {
	i := a.find(key)
	if i < 0 {
		return nil
	}
	return a.at(i)
}

// Contains reports whether key is present, with or without a value.
func (a *Attributes) Contains(key string) bool {
	return a.find(key) >= 0
}

// Set inserts or replaces an attribute, copying key and value into owned
// storage. A nil value records a bare attribute; a non-nil empty value
// records `key=""`.
func (a *Attributes) Set(key string, value []byte) {
	var v Bytes
	hasVal := value != nil
	if hasVal {
		v = OwnBytes(value)
	}
	a.put(OwnBytes([]byte(key)), v, hasVal)
}

// Remove deletes key, reporting whether it was present. The relative order of
// the remaining attributes is unchanged.
func (a *Attributes) Remove(key string) bool {
	i := a.find(key)
	if i < 0 {
		return false
	}
	if a.index != nil {
		delete(a.index, a.spill[i].Key.String())
		a.spill = append(a.spill[:i], a.spill[i+1:]...)
		for j := i; j < len(a.spill); j++ {
			a.index[a.spill[j].Key.String()] = j
		}
	} else {
		copy(a.inline[i:], a.inline[i+1:a.n])
		a.n--
		a.inline[a.n] = Attribute{}
	}
	switch key {
	case "id":
		a.id, a.hasID = Bytes{}, false
	case "class":
		a.class, a.hasClass = Bytes{}, false
	}
	return true
}

// RemoveValue drops the value of key, keeping the bare attribute. Reports
// whether the attribute was present.
func (a *Attributes) RemoveValue(key string) bool {
	i := a.find(key)
	if i < 0 {
		return false
	}
	e := a.at(i)
	e.Value, e.HasValue = Bytes{}, false
	switch key {
	case "id":
		a.id, a.hasID = Bytes{}, false
	case "class":
		a.class, a.hasClass = Bytes{}, false
	}
	return true
}

// ID returns the cached value of the id attribute.
func (a *Attributes) ID() (Bytes, bool) {
	return a.id, a.hasID
}

// Class returns the cached value of the class attribute.
func (a *Attributes) Class() (Bytes, bool) {
	return a.class, a.hasClass
}

// IsClassMember reports whether name appears in the whitespace-separated
// class attribute value.
func (a *Attributes) IsClassMember(name string) bool {
	if !a.hasClass || name == "" {
		return false
	}
	b := a.class.raw
	i := 0
	for i < len(b) {
		i = skipSpace(b, i)
		start := i
		for i < len(b) && !asciiSpace[b[i]] {
			i++
		}
		if i-start == len(name) && string(b[start:i]) == name {
			return true
		}
	}
	return false
}
