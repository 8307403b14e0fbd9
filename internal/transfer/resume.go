package transfer

import "time"

// decisionKind tags the outcome of the resume decision tree (§4.6).
type decisionKind int

const (
	decisionOverwriteFromStart decisionKind = iota
	decisionSkipIdenticalTail
	decisionAppendFromOffset
)

type decision struct {
	kind   decisionKind
	offset int64 // valid only for decisionAppendFromOffset
}

// resumeMode selects which column of the decision table applies.
type resumeMode int

const (
	modeNone resumeMode = iota
	modeDefault
	modeAppend
	modeStrict
)

// decide computes the ResumeDecision for one file per §4.6's table. hashFull
// and hashPrefix are supplied lazily because strict mode only needs them
// in the D < S / D == S branches.
func decide(mode resumeMode, srcSize, dstSize int64, srcMtime, dstMtime time.Time,
	hashFull func() (srcHash, dstHash string, err error),
	hashPrefix func(limit int64) (srcPrefixHash, dstHash string, err error),
) (decision, error) {
	switch mode {
	case modeStrict:
		switch {
		case dstSize == srcSize:
			sh, dh, err := hashFull()
			if err != nil {
				return decision{}, err
			}
			if sh == dh {
				return decision{kind: decisionSkipIdenticalTail}, nil
			}
			return decision{kind: decisionOverwriteFromStart}, nil
		case dstSize < srcSize:
			sp, dh, err := hashPrefix(dstSize)
			if err != nil {
				return decision{}, err
			}
			if sp == dh {
				return decision{kind: decisionAppendFromOffset, offset: dstSize}, nil
			}
			return decision{kind: decisionOverwriteFromStart}, nil
		default: // dstSize > srcSize
			return decision{kind: decisionOverwriteFromStart}, nil
		}

	case modeAppend:
		switch {
		case dstSize == srcSize:
			return decision{kind: decisionSkipIdenticalTail}, nil
		case dstSize < srcSize:
			return decision{kind: decisionAppendFromOffset, offset: dstSize}, nil
		default:
			return decision{kind: decisionOverwriteFromStart}, nil
		}

	case modeDefault:
		if !srcMtime.Equal(dstMtime) {
			return decision{kind: decisionOverwriteFromStart}, nil
		}
		switch {
		case dstSize == srcSize:
			return decision{kind: decisionSkipIdenticalTail}, nil
		case dstSize < srcSize:
			return decision{kind: decisionAppendFromOffset, offset: dstSize}, nil
		default:
			return decision{kind: decisionOverwriteFromStart}, nil
		}

	default:
		return decision{kind: decisionOverwriteFromStart}, nil
	}
}
