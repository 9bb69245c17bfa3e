package parser

import (
	"strconv"

	"github.com/wippyai/evmasm/errors"
)

func (p *Parser) parseData(tokens []string) error {
	for _, tok := range tokens {
		b, err := parseHexByte(tok)
		if err != nil {
			return errors.New(errors.PhaseParse, errors.KindInvalidData).
				At(p.line.No, p.line.Text).
				Value(tok).
				Detail("bad data byte %q", tok).
				Cause(err).
				Build()
		}
		p.prog.Data = append(p.prog.Data, b)
	}
	return nil
}

// parseHexByte accepts a hexadecimal literal with an optional 0x prefix.
func parseHexByte(tok string) (byte, error) {
	digits := tok
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, err
	}
	if v > 0xFF {
		return 0, strconv.ErrRange
	}
	return byte(v), nil
}
