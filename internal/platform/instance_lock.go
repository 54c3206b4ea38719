package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning is returned when another desktop timer holds the lock.
var ErrAlreadyRunning = errors.New("timer already running")

const raiseRequest = "raise"

// Lock is the desktop timer's instance lock: a localhost listener on a port
// picked from the app name. Only one clock ticks per user session.
type Lock struct {
	mu       sync.Mutex
	listener net.Listener
	address  string
}

// Acquire takes the lock for appName.
func Acquire(appName string) (*Lock, error) {
	address := lockAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, address)
	}
	return &Lock{listener: listener, address: address}, nil
}

// Serve calls onRaise for every raise request sent by a later launch. It
// returns once the lock is released.
func (lock *Lock) Serve(onRaise func()) {
	lock.mu.Lock()
	listener := lock.listener
	lock.mu.Unlock()
	if listener == nil {
		return
	}

	for {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		line, _ := bufio.NewReader(conn).ReadString('\n')
		_ = conn.Close()
		if strings.TrimSpace(line) == raiseRequest && onRaise != nil {
			onRaise()
		}
	}
}

// Release frees the lock and stops Serve. A nil or released lock is a no-op.
func (lock *Lock) Release() error {
	if lock == nil {
		return nil
	}
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	return err
}

// Address returns the lock's listen address.
func (lock *Lock) Address() string {
	if lock == nil {
		return ""
	}
	return lock.address
}

// Raise asks the running timer for appName to show its window.
func Raise(appName string) error {
	conn, err := net.DialTimeout("tcp", lockAddress(appName), time.Second)
	if err != nil {
		return fmt.Errorf("reach running timer: %w", err)
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	_, err = fmt.Fprintln(conn, raiseRequest)
	return err
}

func lockAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		firstPort = 20000
		lastPort  = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return firstPort + int(hash.Sum32()%uint32(lastPort-firstPort+1))
}
