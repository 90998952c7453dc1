package session

import (
	"github.com/foxseedlab/rostersearch/internal/archive"
	"github.com/foxseedlab/rostersearch/internal/config"
	"github.com/foxseedlab/rostersearch/internal/discord"
	"github.com/foxseedlab/rostersearch/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		dc := do.MustInvoke[discord.Client](i)
		store := do.MustInvoke[archive.Store](i)
		wh := do.MustInvoke[webhook.Sender](i)
		return NewManager(cfg, dc, store, wh), nil
	})
}
