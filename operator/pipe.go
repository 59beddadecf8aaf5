package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

// Pipe1 to Pipe10 compose operators left to right: Pipe2(source, f1, f2) is f2(f1(source)). Each
// operator's output type must match the next operator's input type.
//
// If there is a commonly used sequence of operators in your code, use Chain or one of the Pipe functions
// to extract the sequence into a new operator. Even if a sequence is not that common, breaking it out
// into a single operator can improve readability.
func Pipe1[S any, O1 any](
	source *observe.Observable[S],
	f1 observe.OperatorFunc[S, O1],
) *observe.Observable[O1] {
	return f1(source)
}

func Pipe2[S any, O1 any, O2 any](
	source *observe.Observable[S],
	f1 observe.OperatorFunc[S, O1],
	f2 observe.OperatorFunc[O1, O2],
) *observe.Observable[O2] {
	return f2(f1(source))
}

func Pipe3[S any, O1 any, O2 any, O3 any](
	source *observe.Observable[S],
	f1 observe.OperatorFunc[S, O1],
	f2 observe.OperatorFunc[O1, O2],
	f3 observe.OperatorFunc[O2, O3],
) *observe.Observable[O3] {
	return f3(f2(f1(source)))
}

func Pipe4[S any, O1 any, O2 any, O3 any, O4 any](
	source *observe.Observable[S],
	f1 observe.OperatorFunc[S, O1],
	f2 observe.OperatorFunc[O1, O2],
	f3 observe.OperatorFunc[O2, O3],
	f4 observe.OperatorFunc[O3, O4],
) *observe.Observable[O4] {
	return f4(f3(f2(f1(source))))
}

func Pipe5[S any, O1 any, O2 any, O3 any, O4 any, O5 any](
	source *observe.Observable[S],
	f1 observe.OperatorFunc[S, O1],
	f2 observe.OperatorFunc[O1, O2],
	f3 observe.OperatorFunc[O2, O3],
	f4 observe.OperatorFunc[O3, O4],
	f5 observe.OperatorFunc[O4, O5],
) *observe.Observable[O5] {
	return f5(f4(f3(f2(f1(source)))))
}

func Pipe6[S any, O1 any, O2 any, O3 any, O4 any, O5 any, O6 any](
	source *observe.Observable[S],
	f1 observe.OperatorFunc[S, O1],
	f2 observe.OperatorFunc[O1, O2],
	f3 observe.OperatorFunc[O2, O3],
	f4 observe.OperatorFunc[O3, O4],
	f5 observe.OperatorFunc[O4, O5],
	f6 observe.OperatorFunc[O5, O6],
) *observe.Observable[O6] {
	return f6(f5(f4(f3(f2(f1(source))))))
}

func Pipe7[S any, O1 any, O2 any, O3 any, O4 any, O5 any, O6 any, O7 any](
	source *observe.Observable[S],
	f1 observe.OperatorFunc[S, O1],
	f2 observe.OperatorFunc[O1, O2],
	f3 observe.OperatorFunc[O2, O3],
	f4 observe.OperatorFunc[O3, O4],
	f5 observe.OperatorFunc[O4, O5],
	f6 observe.OperatorFunc[O5, O6],
	f7 observe.OperatorFunc[O6, O7],
) *observe.Observable[O7] {
	return f7(f6(f5(f4(f3(f2(f1(source)))))))
}

func Pipe8[S any, O1 any, O2 any, O3 any, O4 any, O5 any, O6 any, O7 any, O8 any](
	source *observe.Observable[S],
	f1 observe.OperatorFunc[S, O1],
	f2 observe.OperatorFunc[O1, O2],
	f3 observe.OperatorFunc[O2, O3],
	f4 observe.OperatorFunc[O3, O4],
	f5 observe.OperatorFunc[O4, O5],
	f6 observe.OperatorFunc[O5, O6],
	f7 observe.OperatorFunc[O6, O7],
	f8 observe.OperatorFunc[O7, O8],
) *observe.Observable[O8] {
	return f8(f7(f6(f5(f4(f3(f2(f1(source))))))))
}

func Pipe9[S any, O1 any, O2 any, O3 any, O4 any, O5 any, O6 any, O7 any, O8 any, O9 any](
	source *observe.Observable[S],
	f1 observe.OperatorFunc[S, O1],
	f2 observe.OperatorFunc[O1, O2],
	f3 observe.OperatorFunc[O2, O3],
	f4 observe.OperatorFunc[O3, O4],
	f5 observe.OperatorFunc[O4, O5],
	f6 observe.OperatorFunc[O5, O6],
	f7 observe.OperatorFunc[O6, O7],
	f8 observe.OperatorFunc[O7, O8],
	f9 observe.OperatorFunc[O8, O9],
) *observe.Observable[O9] {
	return f9(f8(f7(f6(f5(f4(f3(f2(f1(source)))))))))
}

func Pipe10[S any, O1 any, O2 any, O3 any, O4 any, O5 any, O6 any, O7 any, O8 any, O9 any, O10 any](
	source *observe.Observable[S],
	f1 observe.OperatorFunc[S, O1],
	f2 observe.OperatorFunc[O1, O2],
	f3 observe.OperatorFunc[O2, O3],
	f4 observe.OperatorFunc[O3, O4],
	f5 observe.OperatorFunc[O4, O5],
	f6 observe.OperatorFunc[O5, O6],
	f7 observe.OperatorFunc[O6, O7],
	f8 observe.OperatorFunc[O7, O8],
	f9 observe.OperatorFunc[O8, O9],
	f10 observe.OperatorFunc[O9, O10],
) *observe.Observable[O10] {
	return f10(f9(f8(f7(f6(f5(f4(f3(f2(f1(source))))))))))
}

// Chain composes operators of a single type into one operator, applied left to right.
func Chain[T any](operators ...observe.OperatorFunc[T, T]) observe.OperatorFunc[T, T] {
	if len(operators) == 0 {
		return Passthrough[T]()
	}
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return source.Pipe(operators...)
	}
}
