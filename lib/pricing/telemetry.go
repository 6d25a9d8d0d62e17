package pricing

import "quantovale/lib/telemetry"

var tracer = telemetry.Tracer("quantovale.lib.pricing")
