// Package domwindow implements the per-window deferred callback and
// lifecycle control core of a DOM layer, on top of [eventloop] and [goja].
//
// # Architecture
//
// Each [Window] owns an isolated timer worker (a goroutine, receiving from
// an unbounded FIFO mailbox). Three independently scheduled actors are
// coordinated purely by message passing:
//
//   - the script context, which calls [Window.SetTimeout] and [Window.Close]
//   - a [TimerFacility], which delivers delayed messages on its own schedule
//   - the content pipeline ([Inbox], e.g. [Pipeline]), which alone invokes
//     script, and alone may terminate the window's script context
//
// Data flow:
//
//	Window.SetTimeout → TimerFacility (delayed) → worker → Inbox: TimerNotification
//	Window.Close      → worker → Inbox: ExitNotification
//	Window.Destroy    → worker: close (terminal, nothing forwarded)
//
// The worker never calls script itself. Close requests and teardown are
// distinct: a close request is forwarded and the worker keeps running, while
// destroying the window stops the worker. Timers cannot be cancelled, except
// by destroying the window; a delivery that arrives after that is dropped.
//
// # Usage
//
//	loop, err := eventloop.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pipeline, err := domwindow.NewPipeline(loop, goja.New())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go loop.Run(ctx)
//
//	window, err := pipeline.OpenWindow(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer window.Destroy()
//
//	_, _ = pipeline.RunScript(ctx, `setTimeout((a, b) => alert(a + b), 10, 1, 2)`)
//
// [eventloop]: github.com/joeycumines/go-eventloop
// [goja]: github.com/dop251/goja
package domwindow
