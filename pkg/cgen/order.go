package cgen

// Order is a C operator precedence level; lower binds tighter.
type Order int

const (
	OrderAtomic         Order = 0
	OrderMember         Order = 1 // . -> []
	OrderFunctionCall   Order = 2
	OrderUnary          Order = 3 // ! ~ - + * & casts
	OrderMultiplicative Order = 5
	OrderAdditive       Order = 6
	OrderShift          Order = 7
	OrderRelational     Order = 8
	OrderEquality       Order = 9
	OrderBitwiseAnd     Order = 10
	OrderBitwiseXor     Order = 11
	OrderBitwiseOr      Order = 12
	OrderLogicalAnd     Order = 13
	OrderLogicalOr      Order = 14
	OrderConditional    Order = 15
	OrderAssignment     Order = 16
	OrderComma          Order = 17
	OrderNone           Order = 99
)

// parenthesize wraps code produced at inner when it is spliced into a
// context expecting outer.
func parenthesize(code string, inner, outer Order) string {
	if inner < outer {
		return code
	}
	if inner == outer && (outer == OrderAtomic || outer == OrderNone) {
		return code
	}
	return "(" + code + ")"
}
