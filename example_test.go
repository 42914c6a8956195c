package domwindow_test

import (
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-domwindow"
)

func ExampleWindow() {
	rt := goja.New()

	inbox := domwindow.InboxFunc(func(n domwindow.Notification) {
		switch n := n.(type) {
		case domwindow.TimerNotification:
			fmt.Println("pipeline: timer with", len(n.Registration.Arguments), "arguments")
		case domwindow.ExitNotification:
			fmt.Println("pipeline: exit")
		}
	})

	var pending []func()
	facility := domwindow.TimerFacilityFunc(func(delay time.Duration, deliver func()) error {
		fmt.Println("scheduled after", delay)
		pending = append(pending, deliver)
		return nil
	})

	window, err := domwindow.New(inbox, nil, nil, rt, domwindow.WithTimerFacility(facility))
	if err != nil {
		panic(err)
	}

	window.Alert(`hello`)
	window.SetTimeout(-10, goja.Undefined(), []goja.Value{rt.ToValue(1), rt.ToValue(2)})
	for _, deliver := range pending {
		deliver()
	}
	window.Close()

	window.Destroy()
	<-window.Done()
	fmt.Println("worker:", window.WorkerState())

	//output:
	//ALERT: hello
	//scheduled after 0s
	//pipeline: timer with 2 arguments
	//pipeline: exit
	//worker: Terminated
}
