package material

import "github.com/chewxy/math32"

// Schlick approximates the Fresnel reflectance for light travelling from a
// medium of index etaI into one of index etaT. cosTheta is the cosine of the
// incident angle. Returns 1 under total internal reflection.
func Schlick(cosTheta, etaI, etaT float32) float32 {
	cosTheta = math32.Min(math32.Abs(cosTheta), 1)

	// Leaving the denser medium the transmitted angle drives the falloff
	if etaI > etaT {
		sinT := etaI / etaT * math32.Sqrt(math32.Max(0, 1-cosTheta*cosTheta))
		if sinT >= 1 {
			return 1
		}
		cosTheta = math32.Sqrt(1 - sinT*sinT)
	}

	r0 := (etaI - etaT) / (etaI + etaT)
	r0 *= r0
	return r0 + (1-r0)*math32.Pow(1-cosTheta, 5)
}
