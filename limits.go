package ldif

// Limits caps per-record allocations during decoding. A zero field means
// "use the default".
type Limits struct {
	MaxLineLen         int // logical line length after unfolding
	MaxEntryAttributes int // attributes in a single entry
}

func defaultLimits() Limits {
	return Limits{
		MaxLineLen:         1 << 20, // 1 MiB
		MaxEntryAttributes: 1 << 16,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxLineLen == 0 {
		l.MaxLineLen = d.MaxLineLen
	}
	if l.MaxEntryAttributes == 0 {
		l.MaxEntryAttributes = d.MaxEntryAttributes
	}
	return l
}
