package vizgen

import (
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const (
	// ParamConcept is the placeholder name for the concept label.
	ParamConcept = "concept"

	// ParamClassName is the placeholder name for the derived class name.
	ParamClassName = "class_name"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// DefaultTemplate is the HTML document generated for every concept. It embeds a Three.js
// scene with a rotating cube, two lights, orbit controls and a resize handler.
const DefaultTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{concept}} Visualization</title>
    <style>
        /* Basic styling for a full-screen canvas */
        body { margin: 0; overflow: hidden; }
    </style>
</head>
<body>
    <!-- The Three.js canvas will be appended automatically -->
    <script type="module">
        // Import Three.js and OrbitControls from a CDN
        import * as THREE from 'https://unpkg.com/three@0.152.0/build/three.module.js';
        import { OrbitControls } from 'https://unpkg.com/three@0.152.0/examples/jsm/controls/OrbitControls.js';

        // THREE.js Visualization: {{concept}}
        // Generated using HTML template v1.0
        class {{class_name}} {
            constructor() {
                // Scene setup
                this.scene = new THREE.Scene();
                this.camera = new THREE.PerspectiveCamera(75, window.innerWidth / window.innerHeight, 0.1, 1000);
                this.renderer = new THREE.WebGLRenderer({ antialias: true });

                // Standard initialization
                this.initScene();
                this.setupLighting();
                this.createBaseGeometry();
                this.addControls();
                this.setupResizeHandler();
            }

            initScene() {
                // Configure renderer and camera
                this.renderer.setSize(window.innerWidth, window.innerHeight);
                this.renderer.setClearColor(0xf0f0f0);
                document.body.appendChild(this.renderer.domElement);
                this.camera.position.z = 5;
            }

            setupLighting() {
                // Ambient plus directional lighting
                const ambientLight = new THREE.AmbientLight(0xffffff, 0.5);
                const directionalLight = new THREE.DirectionalLight(0xffffff, 0.8);
                directionalLight.position.set(5, 5, 5);

                this.scene.add(ambientLight);
                this.scene.add(directionalLight);
            }

            createBaseGeometry() {
                // Core visualization component: a rotating cube
                const geometry = new THREE.BoxGeometry(1, 1, 1);
                const material = new THREE.MeshPhongMaterial({
                    color: 0x00ff00,
                    specular: 0x111111,
                    shininess: 100
                });

                this.mesh = new THREE.Mesh(geometry, material);
                this.scene.add(this.mesh);
            }

            addControls() {
                // Interactive controls
                this.controls = new OrbitControls(this.camera, this.renderer.domElement);
                this.controls.enableDamping = true;
                this.controls.dampingFactor = 0.05;
            }

            setupResizeHandler() {
                // Responsive window handling
                window.addEventListener('resize', () => {
                    this.camera.aspect = window.innerWidth / window.innerHeight;
                    this.camera.updateProjectionMatrix();
                    this.renderer.setSize(window.innerWidth, window.innerHeight);
                });
            }

            animate() {
                requestAnimationFrame(() => this.animate());
                this.controls.update();

                // Base rotation animation
                this.mesh.rotation.x += 0.01;
                this.mesh.rotation.y += 0.01;

                this.renderer.render(this.scene, this.camera);
            }
        }

        // Initialize and start visualization
        const visualization = new {{class_name}}();
        visualization.animate();
    </script>
</body>
</html>
`

// segment is either a literal chunk or a placeholder reference.
type segment struct {
	text        string
	placeholder bool
}

// Template is a fixed document with named {{name}} placeholders. It supports nothing
// beyond direct substitution.
type Template struct {
	segments []segment
}

// ParseTemplate splits text into literal and placeholder segments. An unterminated or
// empty placeholder is reported as ErrRender.
func ParseTemplate(text string) (*Template, error) {
	var segments []segment
	rest := text
	offset := 0

	for {
		start := strings.Index(rest, openDelim)
		if start < 0 {
			break
		}

		end := strings.Index(rest[start+len(openDelim):], closeDelim)
		if end < 0 {
			return nil, goerr.Wrap(ErrRender, "unterminated placeholder", goerr.V("offset", offset+start))
		}

		name := strings.TrimSpace(rest[start+len(openDelim) : start+len(openDelim)+end])
		if name == "" {
			return nil, goerr.Wrap(ErrRender, "empty placeholder", goerr.V("offset", offset+start))
		}

		if start > 0 {
			segments = append(segments, segment{text: rest[:start]})
		}
		segments = append(segments, segment{text: name, placeholder: true})

		consumed := start + len(openDelim) + end + len(closeDelim)
		rest = rest[consumed:]
		offset += consumed
	}

	if rest != "" {
		segments = append(segments, segment{text: rest})
	}

	return &Template{segments: segments}, nil
}

// MustParseTemplate is like ParseTemplate but panics on error. It is meant for
// package-level templates.
func MustParseTemplate(text string) *Template {
	t, err := ParseTemplate(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Placeholders returns the distinct placeholder names in the template, sorted.
func (t *Template) Placeholders() []string {
	var names []string
	for _, seg := range t.segments {
		if seg.placeholder && !slices.Contains(names, seg.text) {
			names = append(names, seg.text)
		}
	}
	slices.Sort(names)
	return names
}

// Execute substitutes params into the template. Every placeholder must have a value in
// params; otherwise nothing is rendered and ErrRender is returned. Extra params are
// ignored.
func (t *Template) Execute(params map[string]string) (string, error) {
	for _, seg := range t.segments {
		if !seg.placeholder {
			continue
		}
		if _, ok := params[seg.text]; !ok {
			return "", goerr.Wrap(ErrRender, "missing template parameter", goerr.V("placeholder", seg.text))
		}
	}

	var b strings.Builder
	for _, seg := range t.segments {
		if seg.placeholder {
			b.WriteString(params[seg.text])
		} else {
			b.WriteString(seg.text)
		}
	}
	return b.String(), nil
}

var defaultTemplate = MustParseTemplate(DefaultTemplate)
