// ephemeris.go - low-precision solar/lunar horizon-frame position
//
// Implements the reduced-accuracy solar and lunar position series from
// Meeus, "Astronomical Algorithms" (chapters 25 and 47 truncated to their
// leading terms) — sufficient for the fraction-of-a-degree placement a
// 150px navball icon needs, without linking a full VSOP87 term table.
//
// License: GPLv3 or later

package main

import "math"

const julianUnixEpoch = 2440587.5 // JD at 1970-01-01T00:00:00Z

func julianDay(unixSeconds int64) float64 {
	return julianUnixEpoch + float64(unixSeconds)/86400.0
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

// sunEquatorial returns the Sun's geocentric right ascension and
// declination (degrees) at Julian day jd, using Meeus's low-precision
// series (ch. 25).
func sunEquatorial(jd float64) (raDeg, decDeg float64) {
	t := (jd - 2451545.0) / 36525.0

	l0 := Normalize360(280.46646 + t*(36000.76983+t*0.0003032))
	m := Normalize360(357.52911 + t*(35999.05029-0.0001537*t))
	mRad := deg2rad(m)

	c := (1.914602-t*(0.004817+0.000014*t))*math.Sin(mRad) +
		(0.019993-0.000101*t)*math.Sin(2*mRad) +
		0.000289*math.Sin(3*mRad)

	trueLon := l0 + c
	omega := 125.04 - 1934.136*t
	apparentLon := trueLon - 0.00569 - 0.00478*math.Sin(deg2rad(omega))

	eps0 := 23.439291 - t*(0.0130042+t*(0.00000016-t*0.000000504))
	eps := eps0 + 0.00256*math.Cos(deg2rad(omega))

	lonRad := deg2rad(apparentLon)
	epsRad := deg2rad(eps)

	ra := math.Atan2(math.Cos(epsRad)*math.Sin(lonRad), math.Cos(lonRad))
	dec := math.Asin(math.Sin(epsRad) * math.Sin(lonRad))

	return Normalize360(rad2deg(ra)), rad2deg(dec)
}

// moonEquatorial returns the Moon's geocentric right ascension and
// declination (degrees) at Julian day jd, using Meeus's truncated
// low-precision series (ch. 47, leading periodic terms only).
func moonEquatorial(jd float64) (raDeg, decDeg float64) {
	t := (jd - 2451545.0) / 36525.0

	lPrime := Normalize360(218.3164477 + 481267.88123421*t)
	d := Normalize360(297.8501921 + 445267.1114034*t)
	m := Normalize360(357.5291092 + 35999.0502909*t)
	mPrime := Normalize360(134.9633964 + 477198.8675055*t)
	f := Normalize360(93.2720950 + 483202.0175233*t)

	dRad, mRad, mpRad, fRad := deg2rad(d), deg2rad(m), deg2rad(mPrime), deg2rad(f)

	lonCorrection := 6.288774*math.Sin(mpRad) +
		1.274027*math.Sin(2*dRad-mpRad) +
		0.658314*math.Sin(2*dRad) +
		0.213618*math.Sin(2*mpRad) -
		0.185116*math.Sin(mRad) -
		0.114332*math.Sin(2*fRad)

	latCorrection := 5.128122*math.Sin(fRad) +
		0.280602*math.Sin(mpRad+fRad) +
		0.277693*math.Sin(mpRad-fRad) +
		0.173237*math.Sin(2*dRad-fRad)

	eclLon := Normalize360(lPrime + lonCorrection)
	eclLat := latCorrection

	eps := 23.439291
	epsRad := deg2rad(eps)
	lonRad := deg2rad(eclLon)
	latRad := deg2rad(eclLat)

	sinDec := math.Sin(latRad)*math.Cos(epsRad) + math.Cos(latRad)*math.Sin(epsRad)*math.Sin(lonRad)
	dec := math.Asin(clampUnit(sinDec))

	y := math.Sin(lonRad)*math.Cos(epsRad) - math.Tan(latRad)*math.Sin(epsRad)
	x := math.Cos(lonRad)
	ra := math.Atan2(y, x)

	return Normalize360(rad2deg(ra)), rad2deg(dec)
}

// greenwichSiderealDeg returns Greenwich mean sidereal time, in
// degrees, at Julian day jd (Meeus ch. 12, mean form — the omitted <0.01deg
// nutation term is within this widget's accuracy budget).
func greenwichSiderealDeg(jd float64) float64 {
	t := (jd - 2451545.0) / 36525.0
	gmst := 280.46061837 + 360.98564736629*(jd-2451545.0) +
		0.000387933*t*t - t*t*t/38710000.0
	return Normalize360(gmst)
}

// equatorialToHorizon converts right ascension/declination (degrees) to
// azimuth/altitude (degrees) for an observer at (latDeg, lonDeg) at
// Julian day jd. Azimuth is measured from north, clockwise (east = 90).
func equatorialToHorizon(raDeg, decDeg, latDeg, lonDeg, jd float64) (azDeg, altDeg float64) {
	lst := Normalize360(greenwichSiderealDeg(jd) + lonDeg)
	hourAngle := deg2rad(Normalize360(lst - raDeg))

	latRad := deg2rad(latDeg)
	decRad := deg2rad(decDeg)

	sinAlt := math.Sin(decRad)*math.Sin(latRad) + math.Cos(decRad)*math.Cos(latRad)*math.Cos(hourAngle)
	alt := math.Asin(clampUnit(sinAlt))

	cosAz := (math.Sin(decRad) - math.Sin(alt)*math.Sin(latRad)) / (math.Cos(alt) * math.Cos(latRad))
	az := math.Acos(clampUnit(cosAz))
	if math.Sin(hourAngle) > 0 {
		az = 2*math.Pi - az
	}

	return rad2deg(az), rad2deg(alt)
}

// SunHorizonPosition returns the Sun's azimuth/altitude (degrees) as seen
// from (latDeg, lonDeg) at unixSeconds.
func SunHorizonPosition(unixSeconds int64, latDeg, lonDeg float64) (azDeg, altDeg float64) {
	jd := julianDay(unixSeconds)
	ra, dec := sunEquatorial(jd)
	return equatorialToHorizon(ra, dec, latDeg, lonDeg, jd)
}

// MoonHorizonPosition returns the Moon's azimuth/altitude (degrees) as
// seen from (latDeg, lonDeg) at unixSeconds.
func MoonHorizonPosition(unixSeconds int64, latDeg, lonDeg float64) (azDeg, altDeg float64) {
	jd := julianDay(unixSeconds)
	ra, dec := moonEquatorial(jd)
	return equatorialToHorizon(ra, dec, latDeg, lonDeg, jd)
}
