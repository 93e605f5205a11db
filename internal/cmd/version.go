package cmd

import (
	"encoding/json"
	"fmt"
)

type VersionCmd struct{}

type versionInfo struct {
	Version string `json:"version"`
	BaseURL string `json:"base_url"`
}

func (v *VersionCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		info := versionInfo{Version: ctx.Version}
		if ctx.Session != nil {
			info.BaseURL = ctx.Session.BaseURL()
		}
		return json.NewEncoder(ctx.Out).Encode(info)
	}
	_, err := fmt.Fprintln(ctx.Out, ctx.Version)
	return err
}
