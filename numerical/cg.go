package numerical

import "math"

// LargeLinearSolver solves a linear system A*x = b where A is supplied
// as a matrix-vector product rather than materialized, so the
// parameterizers never need to hold a dense N x N matrix for meshes
// with tens of thousands of vertices.
type LargeLinearSolver interface {
	// SolveLinearSystem solves apply(x) = b for x. initGuess may be nil,
	// in which case the solver starts from the zero vector.
	SolveLinearSystem(apply func([]float64) []float64, b []float64, initGuess []float64) []float64
}

// ConjGradSolver solves symmetric positive-definite systems with the
// conjugate gradient method, without preconditioning. The LSCM
// parameterizer (param_lscm.go) uses it; the barycentric parameterizer
// uses BiCGSTABSolver.
type ConjGradSolver struct {
	MaxIters     int
	MSETolerance float64
}

// SolveLinearSystem implements LargeLinearSolver.
func (c *ConjGradSolver) SolveLinearSystem(apply func([]float64) []float64, b []float64, initGuess []float64) []float64 {
	n := len(b)
	x := make([]float64, n)
	if initGuess != nil {
		copy(x, initGuess)
	}

	r := vecSub(b, apply(x))
	p := append([]float64(nil), r...)
	rsOld := vecDot(r, r)
	if rsOld == 0 {
		return x
	}

	maxIters := c.MaxIters
	if maxIters <= 0 {
		maxIters = n
	}
	tol := c.MSETolerance
	if tol <= 0 {
		tol = 1e-10
	}
	targetRS := tol * tol * float64(n)

	for iter := 0; iter < maxIters; iter++ {
		ap := apply(p)
		alpha := rsOld / vecDot(p, ap)
		for i := range x {
			x[i] += alpha * p[i]
			r[i] -= alpha * ap[i]
		}
		rsNew := vecDot(r, r)
		if rsNew <= targetRS {
			break
		}
		beta := rsNew / rsOld
		for i := range p {
			p[i] = r[i] + beta*p[i]
		}
		rsOld = rsNew
	}
	return x
}

// BiCGSTABSolver solves general (non-symmetric) systems with the
// stabilized biconjugate gradient method, the default solver for the
// Floater97 shape-preserving parameterizer since its weight matrix
// isn't guaranteed symmetric for Floater's shape-preserving weights.
type BiCGSTABSolver struct {
	MaxIters     int
	MSETolerance float64
}

// SolveLinearSystem implements LargeLinearSolver.
func (c *BiCGSTABSolver) SolveLinearSystem(apply func([]float64) []float64, b []float64, initGuess []float64) []float64 {
	n := len(b)
	x := make([]float64, n)
	if initGuess != nil {
		copy(x, initGuess)
	}

	r := vecSub(b, apply(x))
	rHat := append([]float64(nil), r...)
	rho, alpha, omega := 1.0, 1.0, 1.0
	v := make([]float64, n)
	p := make([]float64, n)

	maxIters := c.MaxIters
	if maxIters <= 0 {
		maxIters = 2 * n
	}
	tol := c.MSETolerance
	if tol <= 0 {
		tol = 1e-10
	}
	targetRS := tol * tol * float64(n)

	if vecDot(r, r) <= targetRS {
		return x
	}

	for iter := 0; iter < maxIters; iter++ {
		rhoNew := vecDot(rHat, r)
		if rhoNew == 0 {
			break
		}
		if iter == 0 {
			copy(p, r)
		} else {
			beta := (rhoNew / rho) * (alpha / omega)
			for i := range p {
				p[i] = r[i] + beta*(p[i]-omega*v[i])
			}
		}
		v = apply(p)
		alpha = rhoNew / vecDot(rHat, v)
		s := make([]float64, n)
		for i := range s {
			s[i] = r[i] - alpha*v[i]
		}
		if vecDot(s, s) <= targetRS {
			for i := range x {
				x[i] += alpha * p[i]
			}
			break
		}
		t := apply(s)
		tDotT := vecDot(t, t)
		if tDotT == 0 {
			for i := range x {
				x[i] += alpha * p[i]
			}
			break
		}
		omega = vecDot(t, s) / tDotT
		for i := range x {
			x[i] += alpha*p[i] + omega*s[i]
			r[i] = s[i] - omega*t[i]
		}
		if vecDot(r, r) <= targetRS {
			break
		}
		rho = rhoNew
	}
	return x
}

func vecSub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func vecDot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Residual returns ||apply(x) - b|| for diagnostic reporting.
func Residual(apply func([]float64) []float64, x, b []float64) float64 {
	r := vecSub(apply(x), b)
	return math.Sqrt(vecDot(r, r))
}
