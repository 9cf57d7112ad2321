package event

// Executor is the single-threaded worker a Subscriber hands long-running
// work off to instead of blocking the dispatch path (spec.md §5's
// "two background workers": the transport read loop publishes, this
// executor runs consumer callbacks). Jobs run strictly in submission
// order on one goroutine, mirroring the teacher's p2p.Peer send-queue
// worker shape.
type Executor struct {
	jobs chan func()
	done chan struct{}
}

// NewExecutor starts the worker goroutine immediately; call Stop to drain
// and terminate it.
func NewExecutor() *Executor {
	e := &Executor{
		jobs: make(chan func(), 64),
		done: make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *Executor) run() {
	for job := range e.jobs {
		job()
	}
	close(e.done)
}

// Submit enqueues job to run on the executor goroutine. Submit never
// blocks the caller beyond channel backpressure; callers on the dispatch
// path should size work accordingly.
func (e *Executor) Submit(job func()) {
	e.jobs <- job
}

// Stop closes the job queue and waits for the worker to drain it.
func (e *Executor) Stop() {
	close(e.jobs)
	<-e.done
}
