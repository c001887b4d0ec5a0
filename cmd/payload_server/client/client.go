package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/arjunsk/cometbench/pkg/y/entry"
)

type IClient interface {
	Fill(size int) ([]byte, error)
	Put(k string, v []byte) error
	Get(key string) ([]byte, error)
	Scan(lKey string, count int) ([][]byte, error)
	Close()
}

var _ IClient = new(Client)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	http.DefaultTransport.(*http.Transport).MaxIdleConnsPerHost = 100
	return &Client{baseURL: baseURL, client: &http.Client{}}
}

func (c *Client) Fill(size int) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/fill/"+fmt.Sprint(size), nil)
	if err != nil {
		return nil, err
	}
	return c.readBytes(req)
}

func (c *Client) Put(k string, v []byte) error {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/put/"+k, bytes.NewBuffer(v))
	if err != nil {
		return err
	}
	_, err = c.readBytes(req)
	return err
}

func (c *Client) Get(key string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/get/"+key, nil)
	if err != nil {
		return nil, err
	}
	return c.readBytes(req)
}

func (c *Client) Scan(lKey string, count int) ([][]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/scan/"+lKey+"/"+fmt.Sprint(count), nil)
	if err != nil {
		return nil, err
	}
	bodyBytes, err := c.readBytes(req)
	if err != nil {
		return nil, err
	}

	res, err := entry.ByteArrayToList(bodyBytes)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}

func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

func (c *Client) readBytes(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, resp.Status)
	}
	return bodyBytes, nil
}
