package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/harvest"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	url := strings.TrimSpace(c.URL)
	if url == "" {
		fmt.Fprintln(deps.Stderr, "警告: 無法取得網頁:404")
		return harvest.Errorf(harvest.EINVALID, "no page URL given")
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "錯誤: 無法抓取資料: %v\n", err)
		return err
	}

	contacts, err := deps.Extractor.Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "錯誤: 無法解析網頁: %v\n", err)
		return err
	}

	if len(contacts) == 0 {
		fmt.Fprintln(deps.Stderr, "警告: 未找到聯絡人資訊！")
		return nil
	}

	fmt.Fprint(deps.Stdout, harvest.RenderTable(contacts, deps.Layout))

	if !c.NoSave {
		result, err := harvest.SaveAll(deps.Ctx, deps.Contacts, contacts)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "錯誤: 無法儲存資料: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "已儲存 %d 筆，重複 %d 筆\n", result.Inserted, result.Absorbed)
	}

	fmt.Fprintln(deps.Stdout, "抓取完成！")
	return nil
}
