// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package domwindow

import (
	"sync"
)

// mailboxChunkSize is the number of messages per node in the mailbox's linked list.
const mailboxChunkSize = 32

// mailbox is an unbounded, multi-producer, single-consumer FIFO of control
// messages. Sends never block. Receives block until a message is available,
// or the mailbox is closed.
type mailbox struct {
	head *mailboxChunk
	tail *mailboxChunk
	// wake has capacity 1, and is signalled on every push, coalescing
	wake   chan struct{}
	mu     sync.Mutex
	length int
	closed bool
}

// mailboxChunk is a fixed-size node, using readPos/pos cursors for O(1) push/pop.
type mailboxChunk struct {
	messages [mailboxChunkSize]controlMessage
	next     *mailboxChunk
	readPos  int
	pos      int
}

var mailboxChunkPool = sync.Pool{
	New: func() any {
		return &mailboxChunk{}
	},
}

func newMailboxChunk() *mailboxChunk {
	c := mailboxChunkPool.Get().(*mailboxChunk)
	c.pos = 0
	c.readPos = 0
	c.next = nil
	return c
}

// returnMailboxChunk clears retained messages (registrations hold script
// values) before recycling.
func returnMailboxChunk(c *mailboxChunk) {
	for i := 0; i < c.pos; i++ {
		c.messages[i] = nil
	}
	c.pos = 0
	c.readPos = 0
	c.next = nil
	mailboxChunkPool.Put(c)
}

func newMailbox() *mailbox {
	return &mailbox{wake: make(chan struct{}, 1)}
}

// push enqueues msg, returning false if the mailbox has been closed.
func (x *mailbox) push(msg controlMessage) bool {
	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		return false
	}
	if x.tail == nil {
		x.tail = newMailboxChunk()
		x.head = x.tail
	}
	if x.tail.pos == len(x.tail.messages) {
		next := newMailboxChunk()
		x.tail.next = next
		x.tail = next
	}
	x.tail.messages[x.tail.pos] = msg
	x.tail.pos++
	x.length++
	x.mu.Unlock()

	select {
	case x.wake <- struct{}{}:
	default:
	}
	return true
}

// pop removes the oldest message. CALLER MUST HOLD x.mu.
func (x *mailbox) pop() (controlMessage, bool) {
	if x.length == 0 {
		return nil, false
	}

	msg := x.head.messages[x.head.readPos]
	x.head.messages[x.head.readPos] = nil
	x.head.readPos++
	x.length--

	if x.head.readPos >= x.head.pos {
		if x.head == x.tail {
			x.head.pos = 0
			x.head.readPos = 0
		} else {
			old := x.head
			x.head = x.head.next
			returnMailboxChunk(old)
		}
	}

	return msg, true
}

// receive blocks until a message is available. It returns false only once
// the mailbox is closed and empty.
func (x *mailbox) receive() (controlMessage, bool) {
	for {
		x.mu.Lock()
		msg, ok := x.pop()
		closed := x.closed
		x.mu.Unlock()
		if ok {
			return msg, true
		}
		if closed {
			return nil, false
		}
		<-x.wake
	}
}

// close prevents any further pushes, and discards anything still queued,
// returning the number of discarded messages.
func (x *mailbox) close() (discarded int) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return 0
	}
	x.closed = true
	for {
		if _, ok := x.pop(); !ok {
			break
		}
		discarded++
	}
	if x.head != nil {
		returnMailboxChunk(x.head)
		x.head, x.tail = nil, nil
	}
	select {
	case x.wake <- struct{}{}:
	default:
	}
	return discarded
}
