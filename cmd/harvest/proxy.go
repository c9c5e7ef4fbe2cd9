package main

import (
	"context"
	"fmt"
	"strings"
)

// Run executes the proxy command.
func (c *ProxyCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "正在測試代理: %s\n", c.Proxy)

	fetcher, err := deps.NewProxyFetcher(c.Proxy, c.Timeout)
	if err != nil {
		fmt.Fprintf(deps.Stdout, "代理無效: %v\n", err)
		return err
	}
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(deps.Ctx, c.Timeout)
	defer cancel()

	body, err := fetcher.Fetch(ctx, c.CheckURL)
	if err != nil {
		fmt.Fprintf(deps.Stdout, "代理無效: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "代理有效，返回的 IP 為: %s\n", strings.TrimSpace(body))
	return nil
}
