package calculator

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	rpowopt   struct{}
	parensopt struct{}
)

// parsectx holds general data for parsing.
type parsectx struct {
	// rpow makes exponentiation right-associative.
	rpow bool
	// parens makes parentheses and implicit multiplication end the current
	// number for the purpose of counting decimal points.
	parens bool
}

// RightAssocPow makes ^ right-associative, so that 2^3^2 is 2^(3^2) = 512.
// By default, every operator including ^ is left-associative and 2^3^2 is
// (2^3)^2 = 64.
func RightAssocPow() ParseOption {
	return rpowopt{}
}

func (rpowopt) parseOption(p parsectx) parsectx {
	p.rpow = true
	return p
}

// ParensEndNumbers makes parentheses, and the multiplication implied next to
// them, separate numbers when checking for repeated decimal points. By
// default only explicit operators do, so "1.5(2.5)" is rejected with
// MultipleDecimalPoints.
func ParensEndNumbers() ParseOption {
	return parensopt{}
}

func (parensopt) parseOption(p parsectx) parsectx {
	p.parens = true
	return p
}

func parseopts(opts []ParseOption) parsectx {
	var p parsectx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	return p
}
