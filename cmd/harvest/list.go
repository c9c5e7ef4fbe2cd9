package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := harvest.ContactFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Email != "" {
		filter.Email = &c.Email
	}

	contacts, err := deps.Contacts.FindContacts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "錯誤: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(contacts) == 0 {
		fmt.Fprintln(deps.Stdout, "尚無聯絡人資料。使用 'harvest scrape' 抓取。")
		return nil
	}

	fmt.Fprint(deps.Stdout, harvest.RenderTable(contacts, deps.Layout))
	return nil
}
