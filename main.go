package main

import "context"

func main() {
	ctx, stop := interruptContext(context.Background(), buildLogger())

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		exitOnError(err)
	}
}
