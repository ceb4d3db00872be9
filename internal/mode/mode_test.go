package mode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proconsult/onboard/internal/api"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/ui/banner"
)

func TestShowError_Redirect(t *testing.T) {
	cmd := ShowError(registration.ErrRedirect{To: registration.RouteHome})
	require.Equal(t, NavigateMsg{To: registration.RouteHome}, cmd())
}

func TestShowError_Banner(t *testing.T) {
	cmd := ShowError(&api.Error{Message: api.MsgNetwork})
	require.Equal(t, ShowBannerMsg{Kind: banner.KindError, Message: api.MsgNetwork}, cmd())
}

func TestShowError_Nil(t *testing.T) {
	require.Nil(t, ShowError(nil))
}

func TestShowSuccess(t *testing.T) {
	msg := ShowSuccess("Password updated")()
	require.Equal(t, ShowBannerMsg{Kind: banner.KindSuccess, Message: "Password updated"}, msg)
}

func TestServicesContext(t *testing.T) {
	require.NotNil(t, Services{}.Context())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, Services{Ctx: ctx}.Context().Err(), context.Canceled)
}
