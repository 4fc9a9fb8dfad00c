package router

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/franzxzx/roadnet/pkg/concurrent"
	http_server "github.com/franzxzx/roadnet/pkg/http/server"
	"github.com/gobwas/ws"
	"github.com/mailru/easygo/netpoll"
	"go.uber.org/zap"
)

// handleWebsocket serves the segment status push feed. Clients connect and
// receive a JSON frame for every applied status change until they disconnect.
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	errChan chan error,
) {
	var err error

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}

	api.log.Info(fmt.Sprintf("segment status websocket API run on port %d", config.WebsocketPort))

	acceptDesc := netpoll.Must(netpoll.HandleListener(
		ln, netpoll.EventRead|netpoll.EventOneShot,
	))

	api.poller, err = netpoll.New(nil)
	if err != nil {
		errChan <- err
		return
	}

	// accept is a channel to signal about next incoming connection Accept()
	// results.
	accept := make(chan error, 1)

	api.poller.Start(acceptDesc, func(conn netpoll.Event) {
		/*
			add net listener (stream socket) file descriptor desc to epoll interest list. (netpoll run epoll_wait() in the background)

			The epoll_ctl() system call modifies the interest list of the epoll instance referred to
			by the file descriptor epfd.

			The epoll_wait() system call returns information about ready file descriptors from
			the epoll instance referred to by the file descriptor epfd. A single epoll_wait() call can
			return information about multiple ready file descriptors.
		*/
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(1000*time.Millisecond, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(conn)
		})
		if err == nil {
			err = <-accept
		}
		if err != nil {
			/*
				if the goroutine pool is full for 1 ms and there are incoming connections,
				cooldown the server for 5 ms
			*/
			if err != concurrent.ErrScheduleTimeout {
				delay := 5 * time.Millisecond
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
			} else if ne, ok := err.(net.Error); ok && ne.Timeout() {
				delay := 5 * time.Millisecond
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
			} else {
				api.log.Sugar().Fatalf("accept error: %v", err)
			}
		}
	})

	<-ctx.Done()

	ln.Close()

	api.hub.RemoveAllUser()
	api.poller.Stop(acceptDesc)

	api.log.Info("websocket server stopped")
}

/*
handle. register a status push subscriber.
use epoll api to reduce memory stack, ref: https://sergey.kamardin.org/articles/million-websocket-and-go/

the linux programming interface chapter 63:
the epoll API allows a process to monitor multiple
file descriptors to see if I/O is possible on any of them. Like signal-driven I/O,
the epoll API provides much better performance when monitoring large num-
bers of file descriptors.
*/
func (api *API) handle(conn net.Conn) {

	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connnection name ", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connnection name ", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc := netpoll.Must(netpoll.HandleRead(conn))

	api.poller.Start(desc, func(ev netpoll.Event) {
		/*
			add user connection (request) file descriptor desc to epoll interest list. (netpoll run epoll_wait() in the background)

			The epoll_ctl() system call modifies the interest list of the epoll instance referred to
			by the file descriptor epfd.

			The epoll_wait() system call returns information about ready file descriptors from
			the epoll instance referred to by the file descriptor epfd. A single epoll_wait() call can
			return information about multiple ready file descriptors.
		*/
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			/*
				Hang up happened on the associated file descriptor.

				Note that when reading from a channel such as a pipe or a
				stream socket, this event merely indicates that the peer
				closed its end of the channel.  Subsequent reads from the
				channel will return 0 (end of file) only after all
				outstanding data in the channel has been consumed.
			*/
			api.log.Info("user disconnected from websocket server")

			api.poller.Stop(desc)
			api.hub.Remove(user)
			return
		}

		// spawn goroutine from goroutine pool to drain client frames. The
		// push feed is one-way, incoming data frames are discarded.
		api.pool.Schedule(func() {
			err := user.ConsumeFrame()
			if err != nil {
				api.log.Error("error reading websocket frame", zap.Error(err))
				// error -> remove user conn file descriptor from epoll interest list & remove from hub
				api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})

	})
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
