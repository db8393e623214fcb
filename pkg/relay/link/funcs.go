package link

import "context"

func Map[In, Out any](mapOnSuccess func(ctx context.Context, in In) Out, opts ...Option) *Stage[In, Out] {
	return New[In, Out](func(ctx context.Context, in In) (Out, error) {
		return mapOnSuccess(ctx, in), nil
	}, opts...)
}

func Try[In, Out any](onTryExecute func(ctx context.Context, in In) (Out, error), opts ...Option) *Stage[In, Out] {
	return New[In, Out](onTryExecute, opts...)
}

// Tee runs sideEffect and forwards the value unchanged.
func Tee[T any](sideEffect func(ctx context.Context, in T), opts ...Option) *Stage[T, T] {
	return New[T, T](func(ctx context.Context, in T) (T, error) {
		sideEffect(ctx, in)
		return in, nil
	}, opts...)
}

// Filter forwards only the values keep accepts.
func Filter[T any](keep func(ctx context.Context, in T) bool, opts ...Option) *Stage[T, T] {
	return New[T, T](func(ctx context.Context, in T) (T, error) {
		if !keep(ctx, in) {
			var zero T
			return zero, ErrSkip
		}
		return in, nil
	}, opts...)
}

// Collect forwards every complete group as a slice.
func Collect[T any](opts ...Option) (*Aggregator[T, []T], error) {
	return NewAggregator[T, []T](func(_ context.Context, group []T) ([]T, error) {
		return group, nil
	}, opts...)
}

// Reduce folds every complete group starting from initial.
func Reduce[In, Out any](initial Out, fold func(acc Out, in In) Out, opts ...Option) (*Aggregator[In, Out], error) {
	return NewAggregator[In, Out](func(_ context.Context, group []In) (Out, error) {
		acc := initial
		for _, v := range group {
			acc = fold(acc, v)
		}
		return acc, nil
	}, opts...)
}
