package webkit

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/grafana/sobek"

	"github.com/bnema/feedwall/internal/domain/entity"
)

// viewportMarker tags the directive we own so it can be replaced or removed
// without touching the page's own viewport tag.
const viewportMarker = "data-feedwall-viewport"

const viewportScriptTemplate = `(function () {
  var marker = %q;
  var width = %d;
  function apply() {
    var head = document.head || document.documentElement;
    if (!head) {
      return false;
    }
    var meta = document.querySelector('meta[' + marker + ']');
    if (width <= 0) {
      if (meta && meta.parentNode) {
        meta.parentNode.removeChild(meta);
      }
      return true;
    }
    if (!meta) {
      meta = document.createElement('meta');
      meta.setAttribute('name', 'viewport');
      meta.setAttribute(marker, '1');
      head.appendChild(meta);
    }
    meta.setAttribute('content', 'width=' + width + ', initial-scale=1');
    return true;
  }
  if (!apply()) {
    document.addEventListener('DOMContentLoaded', apply);
  }
})();`

const volumeScriptTemplate = `(function () {
  window.__feedwallVolume = %s;
  function set(el) {
    try {
      el.volume = window.__feedwallVolume;
      el.muted = window.__feedwallVolume === 0;
    } catch (e) {}
  }
  var media = document.querySelectorAll('video, audio');
  for (var i = 0; i < media.length; i++) {
    set(media[i]);
  }
  if (!window.__feedwallVolumeHook) {
    window.__feedwallVolumeHook = true;
    document.addEventListener('play', function (ev) {
      if (ev && ev.target) {
        set(ev.target);
      }
    }, true);
  }
})();`

// ViewportScript returns the script that injects a mobile viewport directive
// of the given width. A width of zero removes the directive.
func ViewportScript(width int) string {
	if width < 0 {
		width = 0
	}
	return fmt.Sprintf(viewportScriptTemplate, viewportMarker, width)
}

// VolumeScript returns the script that applies volume to current and future
// media elements. The value is clamped to [0, 1].
func VolumeScript(volume float64) string {
	v := entity.ClampVolume(volume)
	return fmt.Sprintf(volumeScriptTemplate, strconv.FormatFloat(v, 'f', -1, 64))
}

// PreflightScripts compiles every injected script so a syntax error shows up
// in the startup log instead of as a silent no-op inside a page.
func PreflightScripts() error {
	scripts := map[string]string{
		"viewport-mobile":  ViewportScript(int(entity.MobileViewport.Width)),
		"viewport-desktop": ViewportScript(0),
		"volume":           VolumeScript(entity.VolumeDefault),
	}

	var errs []error
	for name, src := range scripts {
		if _, err := sobek.Compile(name, src, false); err != nil {
			errs = append(errs, fmt.Errorf("script %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
