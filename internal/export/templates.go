package export

// documentCSS styles the exported document: the fixed slide canvas, each
// template's layout, and the presenter notes block. Slide colors come from
// the custom properties the generator inlines into :root.
const documentCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }

body {
  background: var(--dw-color-background);
  color: var(--dw-color-text);
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
}

.dw-doc-header {
  padding: 24px 32px;
  border-bottom: 1px solid var(--dw-color-border);
}

.dw-doc-header h1 {
  font-size: 20px;
  font-weight: 600;
  color: var(--dw-color-text);
}

.dw-deck {
  display: flex;
  flex-direction: column;
  align-items: center;
  gap: 48px;
  padding: 48px 24px;
}

.dw-page {
  width: 100%;
  max-width: 1280px;
}

/* Fixed 1280x720 canvas; the scale script shrinks it proportionally. */
.dw-frame {
  width: 1280px;
  height: 720px;
  transform-origin: top left;
  overflow: hidden;
  border: 1px solid var(--dw-color-border);
  border-radius: 8px;
  box-shadow: 0 4px 24px rgba(0, 0, 0, 0.25);
}

.dw-slide {
  width: 1280px;
  height: 720px;
  padding: 64px 80px;
  background: var(--dw-color-surface);
  color: var(--dw-color-text);
  display: flex;
  flex-direction: column;
  overflow: hidden;
}

.dw-heading {
  font-size: 44px;
  font-weight: 700;
  margin-bottom: 36px;
}

.dw-editable { border-radius: 2px; }

.dw-fallback {
  margin: auto;
  padding: 24px 32px;
  border: 2px dashed var(--dw-color-muted);
  border-radius: 8px;
  color: var(--dw-color-muted);
  font-size: 24px;
}

/* title */
.dw-title-layout {
  margin: auto 0;
  display: flex;
  flex-direction: column;
  gap: 24px;
}
.dw-title .dw-heading { font-size: 64px; margin-bottom: 0; }
.dw-subtitle { font-size: 28px; color: var(--dw-color-muted); }
.dw-byline { font-size: 20px; color: var(--dw-color-muted); }
.dw-byline-sep { margin: 0 12px; }

/* section */
.dw-section-layout { margin: auto 0; }
.dw-section-number {
  font-size: 24px;
  font-weight: 600;
  color: var(--dw-color-accent);
  margin-bottom: 16px;
}
.dw-section-title { font-size: 56px; font-weight: 700; }

/* bullets */
.dw-bullets ul { list-style: none; }
.dw-bullet {
  font-size: 28px;
  line-height: 1.5;
  padding: 10px 0 10px 36px;
  position: relative;
}
.dw-bullet::before {
  content: "";
  position: absolute;
  left: 8px;
  top: 26px;
  width: 10px;
  height: 10px;
  border-radius: 50%;
  background: var(--dw-color-accent);
}
.dw-bullet[data-level="1"] { margin-left: 48px; font-size: 25px; }
.dw-bullet[data-level="2"] { margin-left: 96px; font-size: 23px; }
.dw-bullet[data-level="3"] { margin-left: 144px; font-size: 21px; }

/* two-columns */
.dw-columns { display: flex; gap: 64px; flex: 1; }
.dw-column { flex: 1; }
.dw-column-heading {
  font-size: 30px;
  font-weight: 600;
  color: var(--dw-color-primary);
  margin-bottom: 20px;
}
.dw-column-items li { font-size: 24px; line-height: 1.6; margin-left: 24px; }

/* image-text */
.dw-image-text .dw-columns { align-items: center; }
.dw-image-pane { flex: 1; display: flex; justify-content: center; }
.dw-image-pane img { max-width: 100%; max-height: 480px; border-radius: 8px; }
.dw-image-placeholder {
  width: 100%;
  height: 360px;
  display: flex;
  align-items: center;
  justify-content: center;
  border: 2px dashed var(--dw-color-muted);
  border-radius: 8px;
  color: var(--dw-color-muted);
}
.dw-text-pane { flex: 1; }
.dw-text-items li { font-size: 24px; line-height: 1.7; margin-left: 24px; }

/* quote */
.dw-quote-layout {
  margin: auto;
  max-width: 900px;
  text-align: center;
}
.dw-quote-layout blockquote {
  font-size: 40px;
  font-style: italic;
  line-height: 1.4;
}
.dw-attribution {
  margin-top: 40px;
  display: flex;
  align-items: center;
  justify-content: center;
  gap: 16px;
}
.dw-initials {
  width: 56px;
  height: 56px;
  border-radius: 50%;
  display: flex;
  align-items: center;
  justify-content: center;
  font-weight: 700;
  color: var(--dw-color-surface);
  background: var(--dw-color-accent);
}
.dw-author { text-align: left; }
.dw-author-name { font-size: 22px; font-weight: 600; }
.dw-author-title { font-size: 18px; color: var(--dw-color-muted); }

/* stats */
.dw-stats { display: flex; gap: 48px; flex: 1; align-items: center; }
.dw-stat { flex: 1; text-align: center; }
.dw-stat-value {
  font-size: 72px;
  font-weight: 700;
  color: var(--dw-color-primary);
}
.dw-stat-label { font-size: 24px; font-weight: 600; margin-top: 8px; }
.dw-stat-desc { font-size: 18px; color: var(--dw-color-muted); margin-top: 8px; }

/* code */
.dw-code-block {
  flex: 1;
  background: var(--dw-color-codeBackground);
  border-radius: 8px;
  padding: 16px 0;
  overflow: auto;
}
.dw-code-block pre, .dw-annotated-code pre {
  font-family: "SF Mono", Menlo, Consolas, monospace;
  font-size: 18px;
}
.dw-code-lang {
  font-size: 14px;
  text-transform: uppercase;
  letter-spacing: 1px;
  color: var(--dw-color-muted);
  padding: 0 16px 8px;
}
.dw-code-caption { font-size: 18px; color: var(--dw-color-muted); margin-top: 12px; }

/* code-annotated */
.dw-annotated { display: flex; gap: 32px; flex: 1; min-height: 0; }
.dw-annotated-code {
  flex: 2;
  position: relative;
  background: var(--dw-color-codeBackground);
  border-radius: 8px;
  padding: 16px 0;
  overflow: auto;
}
.dw-code-line {
  display: block;
  height: 28px;
  line-height: 28px;
  padding: 0 16px;
  white-space: pre;
}
.dw-code-line.dw-highlighted { background: var(--dw-color-highlight); }
.dw-code-line.dw-annotation-boundary { border-top: 1px dashed var(--dw-color-accent); }
.dw-code-line.dw-ellipsis { color: var(--dw-color-muted); }
.dw-line-number {
  display: inline-block;
  width: 40px;
  color: var(--dw-color-muted);
  user-select: none;
}
.dw-callouts { flex: 1; position: relative; }
.dw-callout {
  position: absolute;
  left: 0;
  right: 0;
  padding: 8px 12px;
  border-left: 3px solid var(--dw-color-accent);
  background: var(--dw-color-surface);
}
.dw-callout-title { font-size: 18px; font-weight: 600; }
.dw-callout-text { font-size: 16px; color: var(--dw-color-muted); }

/* timeline */
.dw-timeline { position: relative; flex: 1; display: flex; align-items: center; }
.dw-timeline-line {
  position: absolute;
  top: 50%;
  height: 2px;
  background: var(--dw-color-border);
}
.dw-timeline-step { flex: 1; text-align: center; position: relative; }
.dw-timeline-icon {
  width: 48px;
  height: 48px;
  margin: 0 auto 16px;
  border-radius: 50%;
  display: flex;
  align-items: center;
  justify-content: center;
  background: var(--dw-color-primary);
  color: var(--dw-color-surface);
  font-size: 22px;
}
.dw-timeline-label { font-size: 16px; color: var(--dw-color-accent); font-weight: 600; }
.dw-timeline-title { font-size: 22px; font-weight: 600; margin-top: 4px; }
.dw-timeline-desc { font-size: 16px; color: var(--dw-color-muted); margin-top: 4px; }

/* comparison */
.dw-comparison { width: 100%; border-collapse: collapse; font-size: 22px; }
.dw-comparison th, .dw-comparison td {
  padding: 16px 24px;
  text-align: left;
  border-bottom: 1px solid var(--dw-color-border);
}
.dw-comparison th { color: var(--dw-color-primary); font-size: 24px; }
.dw-comparison .dw-highlighted-col { background: var(--dw-color-highlight); }
.dw-check { color: var(--dw-color-accent); font-weight: 700; }
.dw-cross { color: var(--dw-color-muted); }

/* diagrams */
.dw-diagram {
  flex: 1;
  display: flex;
  align-items: center;
  justify-content: center;
  overflow: hidden;
}
.dw-diagram-caption { font-size: 18px; color: var(--dw-color-muted); text-align: center; }
.mermaid { background: transparent; }

/* agenda */
.dw-agenda { list-style: none; flex: 1; display: flex; flex-direction: column; justify-content: center; gap: 8px; }
.dw-agenda-item {
  display: flex;
  align-items: baseline;
  gap: 24px;
  font-size: 30px;
  padding: 12px 0;
}
.dw-agenda-marker {
  font-size: 22px;
  font-weight: 700;
  color: var(--dw-color-accent);
  min-width: 48px;
}

/* speaker notes */
.dw-notes {
  margin-top: 12px;
  padding: 16px 24px;
  border-left: 3px solid var(--dw-color-accent);
  background: var(--dw-color-surface);
  border-radius: 0 8px 8px 0;
  font-size: 16px;
  line-height: 1.6;
}
.dw-notes p + p { margin-top: 8px; }
.dw-notes code {
  font-family: "SF Mono", Menlo, Consolas, monospace;
  background: var(--dw-color-codeBackground);
  padding: 1px 5px;
  border-radius: 4px;
}
`

// documentScript scales each fixed-size frame to its container width and
// boots mermaid when present.
const documentScript = `
function scaleFrames() {
  document.querySelectorAll(".dw-page").forEach(function (page) {
    var frame = page.querySelector(".dw-frame");
    var slide = page.querySelector(".dw-slide");
    if (!frame || !slide) return;
    var scale = Math.min(page.clientWidth / 1280, 1);
    slide.style.transformOrigin = "top left";
    slide.style.transform = "scale(" + scale + ")";
    frame.style.width = Math.round(1280 * scale) + "px";
    frame.style.height = Math.round(720 * scale) + "px";
  });
}

window.addEventListener("resize", scaleFrames);
document.addEventListener("DOMContentLoaded", function () {
  scaleFrames();
  if (typeof mermaid !== "undefined") {
    mermaid.initialize({ startOnLoad: true, securityLevel: "loose" });
  }
});
`
