package ipc

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"resty.dev/v3"
)

func newClient() *resty.Client {
	path := SocketPath()

	client := resty.NewWithClient(&http.Client{
		Transport: &http.Transport{
			DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
				return net.Dial("unix", path)
			},
		},
	})

	client.SetBaseURL("http://pyframe")
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "pyframe")

	return client
}

func post(route string) error {
	client := newClient()
	defer client.Close()

	response, err := client.R().Post(route)
	if err != nil {
		return err
	}
	if response.StatusCode() != http.StatusOK {
		return fmt.Errorf("error sending command: %s", response.Status())
	}
	return nil
}

// SendStatus queries a running instance over the control socket.
func SendStatus() (*StatusResponse, error) {
	client := newClient()
	defer client.Close()

	result := StatusResponse{}
	response, err := client.R().SetResult(&result).Get("/status")
	if err != nil {
		return nil, err
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error fetching status: %s", response.Status())
	}
	return &result, nil
}

func SendStop() error     { return post("/stop") }
func SendNext() error     { return post("/next") }
func SendPrevious() error { return post("/previous") }
func SendPause() error    { return post("/pause") }
func SendRandom() error   { return post("/random") }
